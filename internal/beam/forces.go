package beam

import (
	"gonum.org/v1/gonum/floats"
)

// ForceField holds shear (kN) and bending moment (kN·m) at each station
type ForceField struct {
	Shear  []float64 `json:"shear"`
	Moment []float64 `json:"moment"`
}

// Grid returns n evenly spaced stations from 0 to length inclusive.
// n must be at least 2.
func Grid(length float64, n int) []float64 {
	return floats.Span(make([]float64, n), 0, length)
}

// ShearAt evaluates the shear force at position x.
// A point load located exactly at x is already subtracted, so the jump
// happens at the load position itself.
func ShearAt(x float64, r Reactions, loads LoadSet) float64 {
	v := r.RA
	for _, p := range loads.Points {
		if x >= p.Location {
			v -= p.Magnitude
		}
	}
	for _, u := range loads.UDLs {
		v -= udlShear(x, u)
	}
	return v
}

// MomentAt evaluates the bending moment at position x (sagging positive)
func MomentAt(x float64, r Reactions, loads LoadSet) float64 {
	m := r.RA * x
	for _, p := range loads.Points {
		if x >= p.Location {
			m -= p.Magnitude * (x - p.Location)
		}
	}
	for _, u := range loads.UDLs {
		m -= udlMoment(x, u)
	}
	for _, c := range loads.Moments {
		if x >= c.Location {
			m -= c.Magnitude
		}
	}
	return m
}

// EvaluateForces computes shear and moment at every station by superposing
// the reactions and each load in turn.
func EvaluateForces(x []float64, r Reactions, loads LoadSet) ForceField {
	n := len(x)
	shear := make([]float64, n)
	moment := make([]float64, n)

	for i, xi := range x {
		shear[i] = r.RA
		moment[i] = r.RA * xi
	}

	for _, p := range loads.Points {
		for i, xi := range x {
			if xi >= p.Location {
				shear[i] -= p.Magnitude
				moment[i] -= p.Magnitude * (xi - p.Location)
			}
		}
	}

	for _, u := range loads.UDLs {
		for i, xi := range x {
			shear[i] -= udlShear(xi, u)
			moment[i] -= udlMoment(xi, u)
		}
	}

	for _, c := range loads.Moments {
		for i, xi := range x {
			if xi >= c.Location {
				moment[i] -= c.Magnitude
			}
		}
	}

	return ForceField{Shear: shear, Moment: moment}
}

// udlShear returns the part of the UDL resultant lying left of x
func udlShear(x float64, u DistributedLoad) float64 {
	switch {
	case x <= u.Start:
		return 0
	case x <= u.End:
		return u.Intensity * (x - u.Start)
	default:
		return u.Intensity * u.Span()
	}
}

// udlMoment returns the moment about x of the UDL portion left of x
func udlMoment(x float64, u DistributedLoad) float64 {
	switch {
	case x <= u.Start:
		return 0
	case x <= u.End:
		l := x - u.Start
		return u.Intensity * l * l / 2
	default:
		l := u.Span()
		return u.Intensity * l * (x - u.Start - l/2)
	}
}
