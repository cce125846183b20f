package beam

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// closureTolerance is the relative tolerance used for the end-of-span
// equilibrium self check
const closureTolerance = 1e-6

// Summary holds the scalar results reported to the user
type Summary struct {
	SlopeLeft       float64 `json:"slope_left"`        // rad, at x = 0
	SlopeRight      float64 `json:"slope_right"`       // rad, at x = L
	MaxDeflectionMM float64 `json:"max_deflection_mm"` // |min(deflection)| (mm)
}

// Summarize extracts support slopes and the maximum deflection.
//
// MaxDeflectionMM is the magnitude of the most negative (downward)
// deflection. An upward excursion is not considered even when it is larger.
func Summarize(r ResponseField) Summary {
	n := len(r.Slope)
	if n == 0 {
		return Summary{}
	}
	return Summary{
		SlopeLeft:       r.Slope[0],
		SlopeRight:      r.Slope[n-1],
		MaxDeflectionMM: math.Abs(floats.Min(r.DeflectionMM)),
	}
}

// Diagnostic is a non-fatal observation about an analysis run
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Diagnostic codes
const (
	DiagIndeterminate   = "indeterminate-type"
	DiagShearClosure    = "shear-closure"
	DiagMomentClosure   = "moment-closure"
	DiagUpwardExcursion = "upward-excursion"
)

// AnalysisResult holds the complete output of one analysis run
type AnalysisResult struct {
	Config    Config    `json:"config"`
	Reactions Reactions `json:"reactions"`
	TotalLoad float64   `json:"total_load"` // kN

	// Station positions (m) and spacing
	X  []float64 `json:"x"`
	Dx float64   `json:"dx"`

	ForceField
	ResponseField
	Summary Summary `json:"summary"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Samples returns the number of stations
func (r *AnalysisResult) Samples() int {
	return len(r.X)
}

// Analyze runs the full pipeline: validation, reactions, internal forces,
// integration and summary. samples is the number of stations along the
// span and must be at least 2. Inputs are validated before any work is
// done and no partial result is ever returned.
func Analyze(cfg Config, loads LoadSet, samples int) (*AnalysisResult, error) {
	if err := Validate(cfg, loads); err != nil {
		return nil, err
	}
	if samples < 2 {
		return nil, geometryErr("samples", "at least 2 stations are required, got %d", samples)
	}

	reactions := SolveReactions(cfg.Length, loads)
	total := loads.TotalLoad()
	if !allFinite([]float64{reactions.RA, reactions.RB, total}) {
		return nil, geometryErr("loads", "result overflows float64")
	}

	x := Grid(cfg.Length, samples)
	forces := EvaluateForces(x, reactions, loads)
	if !allFinite(forces.Shear, forces.Moment) {
		return nil, geometryErr("loads", "result overflows float64")
	}

	dx := cfg.Length / float64(samples-1)
	response, err := Integrate(forces.Moment, dx, cfg.EI)
	if err != nil {
		return nil, err
	}
	if !allFinite(response.Slope, response.Deflection, response.DeflectionMM) {
		return nil, &AnalysisError{Kind: ErrInvalidRigidity, Field: "ei", Msg: "result overflows float64"}
	}

	result := &AnalysisResult{
		Config:        cfg,
		Reactions:     reactions,
		TotalLoad:     total,
		X:             x,
		Dx:            dx,
		ForceField:    forces,
		ResponseField: response,
		Summary:       Summarize(response),
	}
	result.Diagnostics = diagnose(result, loads)

	return result, nil
}

func allFinite(series ...[]float64) bool {
	for _, data := range series {
		for _, v := range data {
			if !isFinite(v) {
				return false
			}
		}
	}
	return true
}

// diagnose runs the end-of-span equilibrium checks. The engine never fails
// on them; they only flag suspicious inputs or numerical trouble.
func diagnose(r *AnalysisResult, loads LoadSet) []Diagnostic {
	var diags []Diagnostic

	if !r.Config.Type.IsDeterminate() {
		diags = append(diags, Diagnostic{
			Code:    DiagIndeterminate,
			Message: fmt.Sprintf("%s beam analyzed with simply supported statics", r.Config.Type),
		})
	}

	L := r.Config.Length
	forceScale := math.Max(1, math.Abs(r.Reactions.RA)+math.Abs(r.Reactions.RB))
	momentScale := forceScale * L
	for _, m := range loads.Moments {
		momentScale += math.Abs(m.Magnitude)
	}

	vEnd := ShearAt(L, r.Reactions, loads)
	if d := math.Abs(vEnd + r.Reactions.RB); d > closureTolerance*forceScale {
		diags = append(diags, Diagnostic{
			Code:    DiagShearClosure,
			Message: fmt.Sprintf("V(L) = %.6g kN does not balance RB = %.6g kN", vEnd, r.Reactions.RB),
		})
	}

	mEnd := MomentAt(L, r.Reactions, loads)
	if math.Abs(mEnd) > closureTolerance*momentScale {
		diags = append(diags, Diagnostic{
			Code:    DiagMomentClosure,
			Message: fmt.Sprintf("M(L) = %.6g kN·m, expected 0", mEnd),
		})
	}

	if len(r.DeflectionMM) > 0 {
		if up := floats.Max(r.DeflectionMM); up > r.Summary.MaxDeflectionMM && up > 0 {
			msg := fmt.Sprintf("upward deflection %.4f mm exceeds reported downward maximum %.4f mm",
				up, r.Summary.MaxDeflectionMM)
			diags = append(diags, Diagnostic{Code: DiagUpwardExcursion, Message: msg})
		}
	}

	return diags
}

// Peak is an extreme value of a diagram and where it occurs
type Peak struct {
	Value    float64 `json:"value"`
	Location float64 `json:"location"` // m
}

// Peaks groups the extreme internal forces of a result
type Peaks struct {
	MaxShear      Peak `json:"max_shear"` // largest |V|, signed value
	MaxMoment     Peak `json:"max_moment"`
	MinMoment     Peak `json:"min_moment"`
	MaxDeflection Peak `json:"max_deflection"` // most negative deflection (mm)
}

// Peaks scans the diagrams for their extreme values
func (r *AnalysisResult) Peaks() Peaks {
	var p Peaks
	if len(r.X) == 0 {
		return p
	}

	iv := 0
	for i, v := range r.Shear {
		if math.Abs(v) > math.Abs(r.Shear[iv]) {
			iv = i
		}
	}
	iMax := floats.MaxIdx(r.Moment)
	iMin := floats.MinIdx(r.Moment)
	iDef := floats.MinIdx(r.DeflectionMM)

	p.MaxShear = Peak{Value: r.Shear[iv], Location: r.X[iv]}
	p.MaxMoment = Peak{Value: r.Moment[iMax], Location: r.X[iMax]}
	p.MinMoment = Peak{Value: r.Moment[iMin], Location: r.X[iMin]}
	p.MaxDeflection = Peak{Value: r.DeflectionMM[iDef], Location: r.X[iDef]}
	return p
}
