package section_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobeam/internal/section"
)

func TestRectangleProperties(t *testing.T) {
	t.Parallel()

	s := section.Rectangle("300x500", 300, 500)
	props := s.CalculateProperties()

	assert.InDelta(t, 150000.0, props.Area, 1e-6)
	assert.InDelta(t, 150.0, props.CentroidX, 1e-9)
	assert.InDelta(t, 250.0, props.CentroidY, 1e-9)
	assert.InDelta(t, 300*math.Pow(500, 3)/12, props.Ix, 1e-3)
	assert.InDelta(t, 300*500*500/6.0, props.SectionModulusTop, 1e-3)
	assert.InDelta(t, props.SectionModulusTop, props.SectionModulusBottom, 1e-6)
}

func TestInertiaIgnoresWinding(t *testing.T) {
	t.Parallel()

	ccw := section.Rectangle("ccw", 200, 400)
	cw := &section.Section{Vertices: []section.Point{
		{X: 0, Y: 0}, {X: 0, Y: 400}, {X: 200, Y: 400}, {X: 200, Y: 0},
	}}

	assert.InDelta(t, ccw.CalculateProperties().Ix, cw.CalculateProperties().Ix, 1e-3)
}

func TestTeeSectionInertia(t *testing.T) {
	t.Parallel()

	// 300 wide web, 400 deep, with a 600 x 100 flange on top
	s := &section.Section{Vertices: []section.Point{
		{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 400}, {X: 450, Y: 400},
		{X: 450, Y: 500}, {X: -150, Y: 500}, {X: -150, Y: 400}, {X: 0, Y: 400},
	}}
	props := s.CalculateProperties()

	webA, webY := 300.0*400, 200.0
	flA, flY := 600.0*100, 450.0
	area := webA + flA
	cy := (webA*webY + flA*flY) / area
	ix := 300*math.Pow(400, 3)/12 + webA*math.Pow(webY-cy, 2) +
		600*math.Pow(100, 3)/12 + flA*math.Pow(flY-cy, 2)

	assert.InDelta(t, area, props.Area, 1e-6)
	assert.InDelta(t, cy, props.CentroidY, 1e-9)
	assert.InDelta(t, ix, props.Ix, 1)
}

func TestFlexuralRigidity(t *testing.T) {
	t.Parallel()

	s := section.Rectangle("steel", 100, 200)
	s.E = 200000
	// I = 100·200³/12 = 6.6667e7 mm⁴; EI = 2e5 · 6.6667e7 · 1e-9 kN·m²
	assert.InDelta(t, 13333.333, s.FlexuralRigidity(), 1e-3)

	s.InertiaFactor = 0.5
	assert.InDelta(t, 6666.667, s.FlexuralRigidity(), 1e-3)

	c := section.Rectangle("concrete", 300, 500)
	c.Fc = 28
	assert.InDelta(t, 4700*math.Sqrt(28), c.Modulus(), 1e-9)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		section section.Section
		wantErr bool
	}{
		{"too few vertices", section.Section{E: 1, Vertices: []section.Point{{}, {X: 1}}}, true},
		{"no material", *section.Rectangle("r", 1, 1), true},
		{"collinear", section.Section{E: 1, Vertices: []section.Point{{}, {X: 1}, {X: 2}}}, true},
		{"bad factor", section.Section{E: 1, InertiaFactor: 2, Vertices: section.Rectangle("r", 1, 1).Vertices}, true},
		{"ok", section.Section{Fc: 21, Vertices: section.Rectangle("r", 1, 1).Vertices}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.section.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tee.json")
	body := `{
  "name": "T-Beam Section",
  "fc": 28,
  "inertia_factor": 0.35,
  "vertices": [
    {"x": 0, "y": 0}, {"x": 300, "y": 0}, {"x": 300, "y": 400},
    {"x": 600, "y": 400}, {"x": 600, "y": 500}, {"x": 0, "y": 500}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := section.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "T-Beam Section", s.Name)
	assert.Greater(t, s.FlexuralRigidity(), 0.0)

	_, err = section.LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
