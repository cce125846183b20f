package beam

// DefaultSamples is the number of evenly spaced stations used when the
// caller does not ask for a specific resolution.
const DefaultSamples = 500

// Type is the support condition label selected by the user.
//
// The engine always solves a simply supported span. The label is carried
// through to reports and charts only.
type Type string

// Beam types accepted by the input layer
const (
	SimplySupported   Type = "Simply Supported"
	Continuous        Type = "Continuous"
	Cantilever        Type = "Cantilever"
	ProppedCantilever Type = "Propped Cantilever"
	Fixed             Type = "Fixed"
)

// Types lists every accepted beam type in display order
var Types = []Type{SimplySupported, Continuous, Cantilever, ProppedCantilever, Fixed}

// ParseType matches a user supplied label against the known beam types.
// Matching ignores case, spaces, dashes and underscores so "propped-cantilever"
// and "Propped Cantilever" are equivalent. An empty label means SimplySupported.
func ParseType(s string) (Type, bool) {
	key := normalizeLabel(s)
	if key == "" {
		return SimplySupported, true
	}
	for _, t := range Types {
		if normalizeLabel(string(t)) == key {
			return t, true
		}
	}
	return "", false
}

// IsDeterminate reports whether two-support statics is exact for the type.
// Other types are still analyzed as simply supported.
func (t Type) IsDeterminate() bool {
	return t == SimplySupported || t == ""
}

func normalizeLabel(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '-' || c == '_':
			continue
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// Config describes the beam geometry and stiffness
type Config struct {
	Length float64 `json:"length" yaml:"length"` // Span (m)
	EI     float64 `json:"ei" yaml:"ei"`         // Flexural rigidity (kN·m²)
	Type   Type    `json:"type,omitempty" yaml:"type,omitempty"`
}

// PointLoad is a concentrated force, downward positive
type PointLoad struct {
	Location  float64 `json:"location" yaml:"location"`   // m from the left support
	Magnitude float64 `json:"magnitude" yaml:"magnitude"` // kN
	Case      string  `json:"case,omitempty" yaml:"case,omitempty"`
}

// DistributedLoad is a uniformly distributed load between Start and End,
// downward positive
type DistributedLoad struct {
	Start     float64 `json:"start" yaml:"start"`         // m
	End       float64 `json:"end" yaml:"end"`             // m
	Intensity float64 `json:"intensity" yaml:"intensity"` // kN/m
	Case      string  `json:"case,omitempty" yaml:"case,omitempty"`
}

// Span returns the loaded length End - Start
func (d DistributedLoad) Span() float64 {
	return d.End - d.Start
}

// Resultant returns the total force of the load (kN)
func (d DistributedLoad) Resultant() float64 {
	return d.Intensity * d.Span()
}

// Centroid returns the position of the resultant (m)
func (d DistributedLoad) Centroid() float64 {
	return d.Start + d.Span()/2
}

// AppliedMoment is a concentrated couple.
// A positive magnitude reduces the moment sum about the left support.
type AppliedMoment struct {
	Location  float64 `json:"location" yaml:"location"`   // m
	Magnitude float64 `json:"magnitude" yaml:"magnitude"` // kN·m
	Case      string  `json:"case,omitempty" yaml:"case,omitempty"`
}

// LoadSet groups every load acting on the beam. Order does not matter.
type LoadSet struct {
	Points  []PointLoad       `json:"points,omitempty" yaml:"points,omitempty"`
	UDLs    []DistributedLoad `json:"udls,omitempty" yaml:"udls,omitempty"`
	Moments []AppliedMoment   `json:"moments,omitempty" yaml:"moments,omitempty"`
}

// IsEmpty reports whether the set has no loads at all
func (ls LoadSet) IsEmpty() bool {
	return len(ls.Points) == 0 && len(ls.UDLs) == 0 && len(ls.Moments) == 0
}

// Count returns the total number of loads
func (ls LoadSet) Count() int {
	return len(ls.Points) + len(ls.UDLs) + len(ls.Moments)
}

// Merge returns a new set holding the loads of both sets
func (ls LoadSet) Merge(other LoadSet) LoadSet {
	out := LoadSet{
		Points:  make([]PointLoad, 0, len(ls.Points)+len(other.Points)),
		UDLs:    make([]DistributedLoad, 0, len(ls.UDLs)+len(other.UDLs)),
		Moments: make([]AppliedMoment, 0, len(ls.Moments)+len(other.Moments)),
	}
	out.Points = append(append(out.Points, ls.Points...), other.Points...)
	out.UDLs = append(append(out.UDLs, ls.UDLs...), other.UDLs...)
	out.Moments = append(append(out.Moments, ls.Moments...), other.Moments...)
	return out
}

// TotalLoad returns the sum of all vertical forces (kN)
func (ls LoadSet) TotalLoad() float64 {
	var total float64
	for _, p := range ls.Points {
		total += p.Magnitude
	}
	for _, u := range ls.UDLs {
		total += u.Resultant()
	}
	return total
}
