package nscp

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// Load case tags carried by each load
const (
	CaseDead       = "D"
	CaseLive       = "L"
	CaseRoof       = "Lr"
	CaseWind       = "W"
	CaseEarthquake = "E"
	CaseRain       = "R"
)

// Cases lists the recognized load case tags
var Cases = []string{CaseDead, CaseLive, CaseRoof, CaseWind, CaseEarthquake, CaseRain}

// NormalizeCase maps a user supplied tag to its canonical form.
// An empty tag is treated as dead load.
func NormalizeCase(tag string) (string, error) {
	t := strings.TrimSpace(tag)
	if t == "" {
		return CaseDead, nil
	}
	for _, c := range Cases {
		if strings.EqualFold(t, c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown load case %q (use one of %s)", tag, strings.Join(Cases, ", "))
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations for common beam design scenarios
// These are the most frequently used combinations for gravity loads
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// FactorFor returns the load factor the combination applies to a case tag.
// Unknown tags get a zero factor.
func (lc LoadCombination) FactorFor(tag string) float64 {
	c, err := NormalizeCase(tag)
	if err != nil {
		return 0
	}
	switch c {
	case CaseDead:
		return lc.Dead
	case CaseLive:
		return lc.Live
	case CaseRoof:
		return lc.Roof
	case CaseWind:
		return lc.Wind
	case CaseEarthquake:
		return lc.Earthquake
	case CaseRain:
		return lc.Rain
	}
	return 0
}

// Factor returns a new load set with every load multiplied by the factor of
// its case. Loads whose factor is zero are dropped.
func (lc LoadCombination) Factor(loads beam.LoadSet) beam.LoadSet {
	var out beam.LoadSet
	for _, p := range loads.Points {
		if f := lc.FactorFor(p.Case); f != 0 {
			p.Magnitude *= f
			out.Points = append(out.Points, p)
		}
	}
	for _, u := range loads.UDLs {
		if f := lc.FactorFor(u.Case); f != 0 {
			u.Intensity *= f
			out.UDLs = append(out.UDLs, u)
		}
	}
	for _, m := range loads.Moments {
		if f := lc.FactorFor(m.Case); f != 0 {
			m.Magnitude *= f
			out.Moments = append(out.Moments, m)
		}
	}
	return out
}

// CombinationResult pairs a combination with its analysis
type CombinationResult struct {
	Combination LoadCombination
	Result      *beam.AnalysisResult
	Mu          float64 // Largest absolute moment (kN-m)
	Location    float64 // Position of Mu (m)
}

// CalculateGoverningCombination analyzes the beam under every combination and
// returns the one producing the largest absolute bending moment, along with
// the results of all combinations in input order.
func CalculateGoverningCombination(cfg beam.Config, loads beam.LoadSet, combinations []LoadCombination, samples int) (CombinationResult, []CombinationResult, error) {
	if len(combinations) == 0 {
		return CombinationResult{}, nil, fmt.Errorf("no load combinations given")
	}

	all := make([]CombinationResult, 0, len(combinations))
	governing := -1
	for _, combo := range combinations {
		res, err := beam.Analyze(cfg, combo.Factor(loads), samples)
		if err != nil {
			return CombinationResult{}, nil, fmt.Errorf("combination %s (%s): %w", combo.ID, combo.Description, err)
		}

		peaks := res.Peaks()
		mu, loc := peaks.MaxMoment.Value, peaks.MaxMoment.Location
		if math.Abs(peaks.MinMoment.Value) > math.Abs(mu) {
			mu, loc = peaks.MinMoment.Value, peaks.MinMoment.Location
		}

		all = append(all, CombinationResult{Combination: combo, Result: res, Mu: mu, Location: loc})
		if governing < 0 || math.Abs(mu) > math.Abs(all[governing].Mu) {
			governing = len(all) - 1
		}
	}

	return all[governing], all, nil
}
