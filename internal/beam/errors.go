package beam

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds returned by Validate and Analyze. Use errors.Is to classify.
var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrInvalidRigidity = errors.New("invalid flexural rigidity")
)

// AnalysisError describes an input that cannot be analyzed
type AnalysisError struct {
	Kind  error  // ErrInvalidGeometry or ErrInvalidRigidity
	Field string // offending input, e.g. "points[2].location"
	Msg   string
}

func (e *AnalysisError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Msg)
}

func (e *AnalysisError) Unwrap() error {
	return e.Kind
}

func geometryErr(field, format string, args ...any) *AnalysisError {
	return &AnalysisError{Kind: ErrInvalidGeometry, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks the beam and its loads before any computation.
// An empty load set is valid.
func Validate(cfg Config, loads LoadSet) error {
	if !isFinite(cfg.Length) || cfg.Length <= 0 {
		return geometryErr("length", "beam length must be positive, got %g m", cfg.Length)
	}
	if !isFinite(cfg.EI) || cfg.EI <= 0 {
		return &AnalysisError{
			Kind:  ErrInvalidRigidity,
			Field: "ei",
			Msg:   fmt.Sprintf("EI must be positive, got %g kN·m²", cfg.EI),
		}
	}

	L := cfg.Length
	for i, p := range loads.Points {
		field := fmt.Sprintf("points[%d]", i)
		if !onSpan(p.Location, L) {
			return geometryErr(field+".location", "%g m is outside the span [0, %g]", p.Location, L)
		}
		if !isFinite(p.Magnitude) {
			return geometryErr(field+".magnitude", "magnitude must be finite")
		}
	}
	for i, u := range loads.UDLs {
		field := fmt.Sprintf("udls[%d]", i)
		if !onSpan(u.Start, L) {
			return geometryErr(field+".start", "%g m is outside the span [0, %g]", u.Start, L)
		}
		if !onSpan(u.End, L) {
			return geometryErr(field+".end", "%g m is outside the span [0, %g]", u.End, L)
		}
		if u.Start > u.End {
			return geometryErr(field, "start %g m is past end %g m", u.Start, u.End)
		}
		if !isFinite(u.Intensity) {
			return geometryErr(field+".intensity", "intensity must be finite")
		}
	}
	for i, m := range loads.Moments {
		field := fmt.Sprintf("moments[%d]", i)
		if !onSpan(m.Location, L) {
			return geometryErr(field+".location", "%g m is outside the span [0, %g]", m.Location, L)
		}
		if !isFinite(m.Magnitude) {
			return geometryErr(field+".magnitude", "magnitude must be finite")
		}
	}
	return nil
}

func onSpan(x, length float64) bool {
	return isFinite(x) && x >= 0 && x <= length
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
