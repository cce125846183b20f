package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// diagram colors: line and fill per series
var palette = []struct{ line, fill color.RGBA }{
	{line: color.RGBA{R: 0x26, G: 0xA6, B: 0x9A, A: 255}, fill: color.RGBA{R: 0xB2, G: 0xDF, B: 0xDB, A: 150}},
	{line: color.RGBA{R: 0x81, G: 0xC7, B: 0x84, A: 255}, fill: color.RGBA{R: 0xC8, G: 0xE6, B: 0xC9, A: 150}},
	{line: color.RGBA{R: 0x4F, G: 0xC3, B: 0xF7, A: 255}, fill: color.RGBA{R: 0xB3, G: 0xE5, B: 0xFC, A: 150}},
	{line: color.RGBA{R: 0xFF, G: 0xB7, B: 0x4D, A: 255}, fill: color.RGBA{R: 0xFF, G: 0xE0, B: 0xB2, A: 150}},
}

// Formats accepted by ExportDiagrams
var Formats = []string{"png", "svg", "pdf"}

// ExportDiagrams writes the four diagrams stacked in a single image. The
// format follows the file extension; a missing or unknown extension gets
// ".png" appended. It returns the path actually written.
func ExportDiagrams(r *beam.AnalysisResult, filename string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !isSupported(format) {
		format = "png"
		filename += ".png"
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDiagrams(r, f, format, 8*vg.Inch, 12*vg.Inch); err != nil {
		return "", err
	}
	return filename, f.Close()
}

// WriteDiagrams renders the four diagrams of r into w using the given format
// (png, svg or pdf)
func WriteDiagrams(r *beam.AnalysisResult, w io.Writer, format string, width, height vg.Length) error {
	series := SeriesOf(r)

	plots := make([][]*plot.Plot, len(series))
	for i, s := range series {
		p, err := newDiagramPlot(r.X, s, i)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Title, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	canvas, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  4 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(canvas))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	_, err = canvas.WriteTo(w)
	return err
}

// newDiagramPlot builds one line chart with the area between the curve and
// the axis shaded
func newDiagramPlot(x []float64, s Series, index int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = "Beam Length (m)"
	p.Y.Label.Text = fmt.Sprintf("%s (%s)", strings.TrimSuffix(strings.Split(s.Title, " Diagram")[0], " Force"), s.Unit)
	p.Add(plotter.NewGrid())

	colors := palette[index%len(palette)]

	curve := make(plotter.XYs, len(x))
	for i := range x {
		curve[i] = plotter.XY{X: x[i], Y: s.Values[i]}
	}

	if len(x) >= 2 {
		area := make(plotter.XYs, 0, len(x)+2)
		area = append(area, plotter.XY{X: x[0], Y: 0})
		area = append(area, curve...)
		area = append(area, plotter.XY{X: x[len(x)-1], Y: 0})
		fill, err := plotter.NewPolygon(area)
		if err != nil {
			return nil, err
		}
		fill.Color = colors.fill
		fill.LineStyle.Width = 0
		p.Add(fill)
	}

	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = colors.line
	p.Add(line)

	axis := plotter.NewFunction(func(float64) float64 { return 0 })
	axis.Color = color.Black
	axis.Width = vg.Points(0.75)
	p.Add(axis)

	return p, nil
}

func isSupported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
