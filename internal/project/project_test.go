package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/project"
	"github.com/alexiusacademia/gobeam/internal/section"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAMLProject(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "floor.yaml", `
name: Second floor
beams:
  - name: B1
    type: simply supported
    length: 10
    ei: 2.0e8
    points:
      - {location: 5, magnitude: 10}
  - name: B2
    type: fixed
    length: 6
    section:
      fc: 28
      inertia_factor: 0.35
      vertices:
        - {x: 0, y: 0}
        - {x: 300, y: 0}
        - {x: 300, y: 500}
        - {x: 0, y: 500}
    udls:
      - {start: 0, end: 6, intensity: 12, case: L}
`)

	f, err := project.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Second floor", f.Name)
	require.Len(t, f.Beams, 2)

	cfg, loads, err := f.Beams[0].Build()
	require.NoError(t, err)
	assert.Equal(t, beam.SimplySupported, cfg.Type)
	assert.Equal(t, 2.0e8, cfg.EI)
	require.Len(t, loads.Points, 1)

	cfg, loads, err = f.Beams[1].Build()
	require.NoError(t, err)
	assert.Equal(t, beam.Fixed, cfg.Type)
	assert.InDelta(t, f.Beams[1].Section.FlexuralRigidity(), cfg.EI, 1e-9)
	assert.Greater(t, cfg.EI, 0.0)
	assert.Equal(t, "L", loads.UDLs[0].Case)
}

func TestLoadJSONSingleBeam(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "b1.json", `{
  "name": "B1",
  "length": 8,
  "ei": 50000,
  "udls": [{"start": 0, "end": 8, "intensity": 4}],
  "moments": [{"location": 2, "magnitude": -6}]
}`)

	f, err := project.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, f.Beams, 1)
	assert.Equal(t, "B1", f.Name)

	cfg, loads, err := f.Beams[0].Build()
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.Length)
	assert.Len(t, loads.Moments, 1)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := project.LoadFromFile(writeFile(t, "b.toml", "length = 3"))
	assert.ErrorIs(t, err, project.ErrUnsupportedFormat)

	_, err = project.LoadFromFile(writeFile(t, "empty.json", `{"name": "nothing"}`))
	assert.Error(t, err)

	_, err = project.LoadFromFile(writeFile(t, "broken.yaml", "beams: [\n"))
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bm   project.Beam
		kind error
	}{
		{"unknown type", project.Beam{Type: "arch", Length: 5, EI: 1}, nil},
		{"unknown case", project.Beam{Length: 5, EI: 1, Points: []beam.PointLoad{{Location: 1, Magnitude: 1, Case: "snow"}}}, nil},
		{"bad section", project.Beam{Length: 5, Section: &section.Section{}}, nil},
		{"no stiffness", project.Beam{Length: 5}, beam.ErrInvalidRigidity},
		{"load off span", project.Beam{Length: 5, EI: 1, Points: []beam.PointLoad{{Location: 6, Magnitude: 1}}}, beam.ErrInvalidGeometry},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := tt.bm.Build()
			require.Error(t, err)
			if tt.kind != nil {
				assert.ErrorIs(t, err, tt.kind)
			}
		})
	}
}

func TestCompactNotation(t *testing.T) {
	t.Parallel()

	p, err := project.ParsePoint("2.5:12:L")
	require.NoError(t, err)
	assert.Equal(t, beam.PointLoad{Location: 2.5, Magnitude: 12, Case: "L"}, p)
	assert.Equal(t, "2.5:12:L", project.FormatPoint(p))

	u, err := project.ParseUDL(" 0 : 10 : 5 ")
	require.NoError(t, err)
	assert.Equal(t, beam.DistributedLoad{Start: 0, End: 10, Intensity: 5}, u)
	assert.Equal(t, "0:10:5", project.FormatUDL(u))

	m, err := project.ParseMoment("3:-15")
	require.NoError(t, err)
	assert.Equal(t, -15.0, m.Magnitude)
	assert.Equal(t, "3:-15", project.FormatMoment(m))

	for _, bad := range []string{"", "5", "1:2:3:4:5", "a:b"} {
		_, err := project.ParsePoint(bad)
		assert.Error(t, err, bad)
	}
	_, err = project.ParseUDL("1:2")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"1:2", "3:4:L"}, project.SplitList(" 1:2 ;; 3:4:L ; "))
	assert.Empty(t, project.SplitList(""))
	assert.Empty(t, project.SplitList(" ; "))
}

func TestWorkbookRoundTrip(t *testing.T) {
	t.Parallel()

	in := &project.File{
		Name: "deck",
		Beams: []project.Beam{
			{
				Name:    "G1",
				Type:    string(beam.SimplySupported),
				Length:  10,
				EI:      2e8,
				Points:  []beam.PointLoad{{Location: 5, Magnitude: 10}, {Location: 7, Magnitude: 3, Case: "L"}},
				UDLs:    []beam.DistributedLoad{{Start: 0, End: 10, Intensity: 5}},
				Moments: []beam.AppliedMoment{{Location: 2, Magnitude: 4}},
			},
			{Name: "G2", Length: 4, EI: 1000},
		},
	}

	path := filepath.Join(t.TempDir(), "deck.xlsx")
	require.NoError(t, project.SaveWorkbook(in, path))

	out, err := project.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "deck", out.Name)
	require.Len(t, out.Beams, 2)

	g1 := out.Beams[0]
	assert.Equal(t, "G1", g1.Name)
	assert.Equal(t, 10.0, g1.Length)
	assert.Equal(t, in.Beams[0].Points, g1.Points)
	assert.Equal(t, in.Beams[0].UDLs, g1.UDLs)
	assert.Equal(t, in.Beams[0].Moments, g1.Moments)

	assert.Empty(t, out.Beams[1].Points)
	_, _, err = out.Beams[1].Build()
	assert.NoError(t, err)
}
