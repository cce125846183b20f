package beam

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ResponseField holds the elastic response at each station
type ResponseField struct {
	Slope        []float64 `json:"slope"`         // rad
	Deflection   []float64 `json:"deflection"`    // m, upward positive
	DeflectionMM []float64 `json:"deflection_mm"` // mm
}

// Integrate derives slope and deflection from the moment diagram using two
// cumulative rectangle-rule sums:
//
//	slope[i]      = dx · Σ_{j≤i} M[j]/EI
//	deflection[i] = dx · Σ_{j≤i} slope[j]
//
// No boundary correction is applied, so the curve starts from zero slope at
// the left support. This is an engineering approximation that converges as
// the station count grows.
func Integrate(moment []float64, dx, ei float64) (ResponseField, error) {
	if !isFinite(ei) || ei <= 0 {
		return ResponseField{}, &AnalysisError{
			Kind:  ErrInvalidRigidity,
			Field: "ei",
			Msg:   fmt.Sprintf("EI must be positive, got %g kN·m²", ei),
		}
	}

	n := len(moment)
	slope := make([]float64, n)
	for i, m := range moment {
		slope[i] = m / ei
	}
	floats.CumSum(slope, slope)
	floats.Scale(dx, slope)

	deflection := floats.CumSum(make([]float64, n), slope)
	floats.Scale(dx, deflection)

	return ResponseField{
		Slope:        slope,
		Deflection:   deflection,
		DeflectionMM: floats.ScaleTo(make([]float64, n), 1000, deflection),
	}, nil
}
