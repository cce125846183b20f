package section

import (
	"math"

	"github.com/alexiusacademia/gobeam/internal/nscp"
)

// Rectangle returns a b × h rectangular section (mm) with its bottom-left
// corner at the origin
func Rectangle(name string, b, h float64) *Section {
	return &Section{
		Name: name,
		Vertices: []Point{
			{X: 0, Y: 0},
			{X: b, Y: 0},
			{X: b, Y: h},
			{X: 0, Y: h},
		},
	}
}

// CalculateProperties computes geometric properties of the section
func (s *Section) CalculateProperties() *Properties {
	props := &Properties{}

	if len(s.Vertices) < 3 {
		return props
	}

	// Find bounding box
	props.MinX, props.MaxX = s.Vertices[0].X, s.Vertices[0].X
	props.MinY, props.MaxY = s.Vertices[0].Y, s.Vertices[0].Y

	for _, v := range s.Vertices {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}

	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	// Calculate area and centroid using the shoelace formula
	props.Area, props.CentroidX, props.CentroidY = s.calculateAreaAndCentroid()
	props.Ix = s.centroidalInertia(props.Area, props.CentroidY)

	if top := props.MaxY - props.CentroidY; top > 0 {
		props.SectionModulusTop = props.Ix / top
	}
	if bottom := props.CentroidY - props.MinY; bottom > 0 {
		props.SectionModulusBottom = props.Ix / bottom
	}

	return props
}

// calculateAreaAndCentroid uses the shoelace formula
func (s *Section) calculateAreaAndCentroid() (area, cx, cy float64) {
	n := len(s.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := s.Vertices[i].X*s.Vertices[j].Y - s.Vertices[j].X*s.Vertices[i].Y
		signedArea += cross
		sumX += (s.Vertices[i].X + s.Vertices[j].X) * cross
		sumY += (s.Vertices[i].Y + s.Vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}

// centroidalInertia returns the second moment of area about the horizontal
// axis through the centroid, using the polygon form of Green's theorem and
// the parallel axis theorem.
func (s *Section) centroidalInertia(area, cy float64) float64 {
	n := len(s.Vertices)
	if n < 3 || area == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vi, vj := s.Vertices[i], s.Vertices[j]
		cross := vi.X*vj.Y - vj.X*vi.Y
		sum += cross * (vi.Y*vi.Y + vi.Y*vj.Y + vj.Y*vj.Y)
	}

	// sum has the sign of the winding; Ix about the origin is |sum|/12
	ixOrigin := math.Abs(sum) / 12
	return ixOrigin - area*cy*cy
}

// Modulus returns the modulus of elasticity (MPa) used for the section
func (s *Section) Modulus() float64 {
	if s.E > 0 {
		return s.E
	}
	return nscp.ConcreteModulus(s.Fc)
}

// EffectiveInertia returns the gross centroidal inertia scaled by the
// section's inertia factor (mm⁴)
func (s *Section) EffectiveInertia() float64 {
	ix := s.CalculateProperties().Ix
	if s.InertiaFactor > 0 {
		ix *= s.InertiaFactor
	}
	return ix
}

// FlexuralRigidity returns EI of the section in kN·m²
func (s *Section) FlexuralRigidity() float64 {
	return FlexuralRigidity(s.Modulus(), s.EffectiveInertia())
}

// FlexuralRigidity converts E (MPa) and I (mm⁴) into EI (kN·m²).
// 1 N·mm² = 1e-3 kN · 1e-6 m² = 1e-9 kN·m².
func FlexuralRigidity(eMPa, iMM4 float64) float64 {
	return eMPa * iMM4 * 1e-9
}
