package beam

// Reactions holds the vertical support forces (kN, upward positive)
type Reactions struct {
	RA float64 `json:"ra"` // left support, x = 0
	RB float64 `json:"rb"` // right support, x = L
}

// SolveReactions computes the two support reactions from equilibrium of
// forces and of moments about the left support.
//
// Applied moments are subtracted from the moment sum about A. length must
// be positive; Validate guarantees this for Analyze.
func SolveReactions(length float64, loads LoadSet) Reactions {
	var totalLoad, momentAboutA float64

	for _, p := range loads.Points {
		totalLoad += p.Magnitude
		momentAboutA += p.Magnitude * p.Location
	}

	// UDL resultant acts at the centroid of the loaded segment
	for _, u := range loads.UDLs {
		w := u.Resultant()
		totalLoad += w
		momentAboutA += w * u.Centroid()
	}

	for _, m := range loads.Moments {
		momentAboutA -= m.Magnitude
	}

	rb := momentAboutA / length
	return Reactions{
		RA: totalLoad - rb,
		RB: rb,
	}
}
