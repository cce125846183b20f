package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// execute runs the root command with fresh flag state and returns stdout
// and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		resetFlags(c.Flags())
		resetFlags(c.PersistentFlags())
	}
	analyzePoints, analyzeUDLs, analyzeMoments = nil, nil, nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		switch f.Value.(type) {
		case *pointsFlag, *udlsFlag, *momentsFlag:
		default:
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

func TestAnalyzeCommand(t *testing.T) {
	out, _, err := execute(t, "analyze", "--length", "10", "--ei", "200000", "--point", "5:10", "--samples", "101")
	require.NoError(t, err)

	assert.Contains(t, out, "BEAM ANALYSIS")
	assert.Contains(t, out, "RA (x = 0):")
	assert.Contains(t, out, "5.000 kN")
	assert.Contains(t, out, "25.000 kN·m")
	assert.Contains(t, out, "SLOPE AND DEFLECTION")
}

func TestAnalyzeCommandDiagnosticsLogged(t *testing.T) {
	out, logs, err := execute(t, "analyze", "-L", "6", "--ei", "1e5", "--type", "fixed", "--udl", "0:6:10")
	require.NoError(t, err)

	assert.Contains(t, out, beam.DiagIndeterminate)
	assert.Contains(t, logs, "level=WARN")
	assert.Contains(t, logs, beam.DiagIndeterminate)
}

func TestAnalyzeCommandCombinations(t *testing.T) {
	out, _, err := execute(t, "analyze", "-L", "6", "--ei", "50000",
		"--udl", "0:6:10:D; 0:6:5:L", "--combos", "--simplified", "--all")
	require.NoError(t, err)

	assert.Contains(t, out, "GOVERNS")
	assert.Contains(t, out, "Governing Combination: 1.2D + 1.6L")
	assert.Contains(t, out, "90.00 kN-m")
}

func TestAnalyzeCommandSection(t *testing.T) {
	out, _, err := execute(t, "analyze", "-L", "5", "-b", "300", "--height", "500", "--fc", "28", "--point", "2.5:20")
	require.NoError(t, err)

	// Ec = 4700√28, Ig = 300·500³/12, EI = Ec·Ig·1e-9 ≈ 77,720 kN·m²
	assert.Contains(t, out, "7.772e+04 kN·m²")
}

func TestAnalyzeCommandOutputs(t *testing.T) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "beam.svg")
	book := filepath.Join(dir, "beam.xlsx")
	pdf := filepath.Join(dir, "beam.pdf")

	out, _, err := execute(t, "analyze", "-L", "8", "--ei", "1e5", "--udl", "0:8:4",
		"--diagram", "--output", chart, "--xlsx", book, "--report", pdf)
	require.NoError(t, err)

	assert.Contains(t, out, "BENDING MOMENT DIAGRAM")
	for _, p := range []string{chart, book, pdf} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Greater(t, info.Size(), int64(0), p)
	}
}

func TestAnalyzeCommandErrors(t *testing.T) {
	_, _, err := execute(t, "analyze", "--ei", "1")
	assert.ErrorContains(t, err, "--length")

	_, _, err = execute(t, "analyze", "-L", "4", "--point", "5:1", "--ei", "1")
	assert.ErrorIs(t, err, beam.ErrInvalidGeometry)

	_, _, err = execute(t, "analyze", "-L", "4")
	assert.ErrorIs(t, err, beam.ErrInvalidRigidity)

	_, _, err = execute(t, "analyze", "-L", "4", "--ei", "1", "--point", "oops")
	assert.Error(t, err)

	_, _, err = execute(t, "analyze", "-L", "4", "--ei=-5")
	assert.ErrorIs(t, err, beam.ErrInvalidRigidity)
	assert.ErrorContains(t, err, "got -5 kN·m²")
}

func TestAnalyzeCommandProjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: floor
beams:
  - {name: B1, length: 4, ei: 1000, points: [{location: 2, magnitude: 8}]}
  - {name: B2, length: 10, ei: 1000, points: [{location: 5, magnitude: 10}]}
`), 0o644))

	out, _, err := execute(t, "analyze", "--file", path, "--beam", "B2")
	require.NoError(t, err)
	assert.Contains(t, out, "Beam: B2")
	assert.Contains(t, out, "10.000 m")

	_, _, err = execute(t, "analyze", "--file", path, "--beam", "B9")
	assert.ErrorContains(t, err, "B9")
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "floor", "beams": [
		{"name": "B1", "length": 4, "ei": 1000, "points": [{"location": 2, "magnitude": 8}]},
		{"name": "B2", "length": 4, "points": [{"location": 2, "magnitude": 8}]}
	]}`), 0o644))

	out, _, err := execute(t, "batch", "--file", path, "--workers", "2", "--samples", "50")
	require.ErrorContains(t, err, "1 of 2 beams failed")
	assert.Contains(t, out, "B1")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
}

func TestSectionCommand(t *testing.T) {
	out, _, err := execute(t, "section", "--width", "300", "--height", "500", "--cracked")
	require.NoError(t, err)
	assert.Contains(t, out, "Gross Area:")
	assert.Contains(t, out, "150000 mm²")
	assert.Contains(t, out, "Effective inertia (0.35 Ig)")

	_, _, err = execute(t, "section", "--width", "300")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gobeam v")
}

func TestLoadFlags(t *testing.T) {
	var p pointsFlag
	require.NoError(t, p.Set("1:2"))
	require.NoError(t, p.Set("3:4:L; 5:6"))
	assert.Len(t, p, 3)
	assert.Equal(t, "L", p[1].Case)
	assert.Equal(t, "[1:2; 3:4:L; 5:6]", p.String())

	var blank pointsFlag
	require.NoError(t, blank.Set(" ; "))
	assert.Empty(t, blank)

	var u udlsFlag
	require.NoError(t, u.Set("0:10:5"))
	assert.Error(t, u.Set("0:10"))

	var m momentsFlag
	require.NoError(t, m.Set("2:-3"))
	assert.Equal(t, -3.0, m[0].Magnitude)
}
