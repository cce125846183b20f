package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// Series is one diagram of an analysis result
type Series struct {
	Title  string
	Unit   string
	Values []float64
}

// SeriesOf returns the four diagrams of a result in display order
func SeriesOf(r *beam.AnalysisResult) []Series {
	return []Series{
		{Title: "Shear Force Diagram (SFD)", Unit: "kN", Values: r.Shear},
		{Title: "Bending Moment Diagram (BMD)", Unit: "kN·m", Values: r.Moment},
		{Title: "Slope Diagram", Unit: "rad", Values: r.Slope},
		{Title: "Deflection Diagram", Unit: "mm", Values: r.DeflectionMM},
	}
}

// DrawASCIIDiagrams renders the shear, moment, slope and deflection diagrams
// as terminal line charts of the given width and height (characters)
func DrawASCIIDiagrams(r *beam.AnalysisResult, width, height int) string {
	var sb strings.Builder

	for _, s := range SeriesOf(r) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(s.Title)))
		sb.WriteString("  " + strings.Repeat("─", len([]rune(s.Title))) + "\n\n")
		sb.WriteString(DrawASCIISeries(s, r.Config.Length, width, height))
		sb.WriteString("\n")
	}

	return sb.String()
}

// DrawASCIISeries renders a single series. The values are resampled to the
// chart width so the x axis stays proportional to the span.
func DrawASCIISeries(s Series, length float64, width, height int) string {
	if len(s.Values) == 0 {
		return "  (no data)\n"
	}

	data := Resample(s.Values, width)
	caption := fmt.Sprintf("%s (%s) along 0 to %.2f m", s.Title, s.Unit, length)

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Offset(4),
		asciigraph.Caption(caption),
		asciigraph.Precision(precisionFor(data)),
	}
	// asciigraph collapses a flat line to a single row; pin the bounds so an
	// all-zero diagram still shows its axis
	if lo, hi := minMax(data); lo == hi {
		opts = append(opts, asciigraph.LowerBound(lo-1), asciigraph.UpperBound(hi+1))
	}

	return asciigraph.Plot(data, opts...) + "\n"
}

// DrawBeamSketch draws the span with its supports and loads:
//
//	  ▼ point loads, ▓ UDL extent, ↺/↻ applied moments, △ supports
func DrawBeamSketch(cfg beam.Config, loads beam.LoadSet, width int) string {
	if width < 10 {
		width = 10
	}
	col := func(x float64) int {
		c := int(math.Round(x / cfg.Length * float64(width-1)))
		return max(0, min(width-1, c))
	}

	udlRow := []rune(strings.Repeat(" ", width))
	pointRow := []rune(strings.Repeat(" ", width))
	beamRow := []rune(strings.Repeat("═", width))
	supportRow := []rune(strings.Repeat(" ", width))

	for _, u := range loads.UDLs {
		for c := col(u.Start); c <= col(u.End); c++ {
			udlRow[c] = '▓'
		}
	}
	for _, p := range loads.Points {
		if p.Magnitude < 0 {
			pointRow[col(p.Location)] = '▲'
		} else {
			pointRow[col(p.Location)] = '▼'
		}
	}
	for _, m := range loads.Moments {
		if m.Magnitude < 0 {
			beamRow[col(m.Location)] = '↻'
		} else {
			beamRow[col(m.Location)] = '↺'
		}
	}
	supportRow[0] = '△'
	supportRow[width-1] = '△'

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  BEAM: %s, L = %.2f m\n", typeLabel(cfg.Type), cfg.Length))
	sb.WriteString("\n")
	if len(loads.UDLs) > 0 {
		sb.WriteString("  " + string(udlRow) + "\n")
	}
	sb.WriteString("  " + string(pointRow) + "\n")
	sb.WriteString("  " + string(beamRow) + "\n")
	sb.WriteString("  " + string(supportRow) + "\n")
	sb.WriteString(fmt.Sprintf("  A%sB\n", strings.Repeat(" ", width-2)))
	sb.WriteString("\n")
	sb.WriteString("  Legend: ▼ point load  ▓ UDL  ↺ moment  △ support\n")
	return sb.String()
}

var (
	boxTitleStyle = lipgloss.NewStyle().Bold(true)
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2).
			MarginLeft(2)
)

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	body := boxTitleStyle.Render(title)
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}
	return boxStyle.Render(body) + "\n"
}

// Resample picks n values evenly spread over data, always keeping the first
// and last samples. Data shorter than n is returned unchanged.
func Resample(data []float64, n int) []float64 {
	if n < 2 || len(data) <= n {
		return data
	}
	out := make([]float64, n)
	step := float64(len(data)-1) / float64(n-1)
	for i := range out {
		out[i] = data[int(math.Round(float64(i)*step))]
	}
	return out
}

func precisionFor(data []float64) uint {
	lo, hi := minMax(data)
	span := math.Max(math.Abs(lo), math.Abs(hi))
	switch {
	case span == 0 || span >= 100:
		return 1
	case span >= 1:
		return 2
	default:
		// small values such as slopes need significant digits
		return uint(min(10, 2-int(math.Floor(math.Log10(span)))))
	}
}

func minMax(data []float64) (lo, hi float64) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi = data[0], data[0]
	for _, v := range data[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func typeLabel(t beam.Type) string {
	if t == "" {
		return string(beam.SimplySupported)
	}
	return string(t)
}
