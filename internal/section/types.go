package section

import "fmt"

// Section represents a prismatic beam cross-section defined by vertices
// The section is defined in a local coordinate system where:
// - Y-axis points upward
// - X-axis points to the right
// - Origin can be at any convenient location
type Section struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Material properties (MPa). E takes precedence; otherwise Ec is
	// derived from f'c.
	E  float64 `json:"e,omitempty" yaml:"e,omitempty"`
	Fc float64 `json:"fc,omitempty" yaml:"fc,omitempty"`

	// Section geometry defined by vertices (in mm)
	// Vertices should be defined counter-clockwise for the outer boundary
	// The section is assumed to be a simple polygon (no holes)
	Vertices []Point `json:"vertices" yaml:"vertices"`

	// Multiplier applied to the gross moment of inertia (e.g. 0.35 for
	// cracked concrete beams). Zero means 1.
	InertiaFactor float64 `json:"inertia_factor,omitempty" yaml:"inertia_factor,omitempty"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"` // mm
	Y float64 `json:"y" yaml:"y"` // mm
}

// Properties holds calculated geometric properties
type Properties struct {
	// Overall dimensions
	Width  float64 // Maximum width (mm)
	Height float64 // Total height (mm)
	Area   float64 // Gross area (mm²)

	// Centroid location
	CentroidX float64 // mm
	CentroidY float64 // mm

	// Second moment of area about the horizontal centroidal axis (mm⁴)
	Ix float64

	// Elastic section moduli (mm³)
	SectionModulusTop    float64
	SectionModulusBottom float64

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if len(s.Vertices) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	if s.E < 0 {
		return &ValidationError{"E must not be negative"}
	}
	if s.E == 0 && s.Fc <= 0 {
		return &ValidationError{"either E or f'c must be positive"}
	}
	if s.InertiaFactor < 0 || s.InertiaFactor > 1 {
		return &ValidationError{msg: fmt.Sprintf("inertia factor must be within (0, 1], got %g", s.InertiaFactor)}
	}
	if area, _, _ := s.calculateAreaAndCentroid(); area <= 0 {
		return &ValidationError{"section vertices enclose no area"}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
