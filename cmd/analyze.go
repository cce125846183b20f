package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/project"
	"github.com/alexiusacademia/gobeam/internal/report"
)

var (
	// Beam inputs
	analyzeLength  float64
	analyzeEI      float64
	analyzeType    string
	analyzePoints  pointsFlag
	analyzeUDLs    udlsFlag
	analyzeMoments momentsFlag
	analyzeSamples int
	analyzeSection sectionOptions

	// Project file input
	analyzeFile string
	analyzeBeam string

	// Load combinations
	analyzeCombos     bool
	analyzeSimplified bool
	analyzeAll        bool

	// Outputs
	analyzeDiagram bool
	analyzeWidth   int
	analyzeExport  string
	analyzeXLSX    string
	analyzeReport  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze shear, moment, slope and deflection of a beam",
	Long: `Compute support reactions, shear force and bending moment diagrams,
slope and deflection of a straight two-support beam.

Loads (downward positive):
  --point  loc:P[:case]          point load P (kN) at loc (m)
  --udl    start:end:w[:case]    uniform load w (kN/m) between start and end (m)
  --moment loc:M[:case]          applied moment M (kN·m) at loc (m)

Each flag may be repeated, or hold several loads separated by ';'.
The optional case tag (D, L, Lr, W, E, R) is used by --combos.

Stiffness is given directly with --ei (kN·m²) or derived from a section
(--width/--height or --section, with --fc or --e).

Examples:
  # 10 m beam, 10 kN at midspan
  gobeam analyze --length 10 --ei 200000 --point 5:10

  # Rectangular concrete section, dead and live UDL, governing combination
  gobeam analyze -L 6 -b 300 --height 500 --fc 28 --cracked \
    --udl 0:6:15:D --udl 0:6:10:L --combos --all

  # First beam of a schedule, with terminal charts and a PDF report
  gobeam analyze --file floor.yaml --diagram --report floor.pdf`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	f := analyzeCmd.Flags()

	// Geometry and stiffness
	f.Float64VarP(&analyzeLength, "length", "L", 0, "Span length (m)")
	f.Float64Var(&analyzeEI, "ei", 0, "Flexural rigidity EI (kN·m²)")
	f.StringVarP(&analyzeType, "type", "t", string(beam.SimplySupported), "Beam type label")
	analyzeSection.bind(f)

	// Loads
	f.Var(&analyzePoints, "point", "Point load loc:P[:case] (repeatable)")
	f.Var(&analyzeUDLs, "udl", "Uniform load start:end:w[:case] (repeatable)")
	f.Var(&analyzeMoments, "moment", "Applied moment loc:M[:case] (repeatable)")
	f.IntVarP(&analyzeSamples, "samples", "n", 0, "Number of stations (default from GOBEAM_SAMPLES or 500)")

	// Project file
	f.StringVarP(&analyzeFile, "file", "f", "", "Beam or project file (.json, .yaml, .xlsx)")
	f.StringVar(&analyzeBeam, "beam", "", "Beam name to pick from a project file (default: first)")

	// Load combinations
	f.BoolVar(&analyzeCombos, "combos", false, "Analyze NSCP 2015 load combinations and report the governing one")
	f.BoolVarP(&analyzeSimplified, "simplified", "s", false, "Use simplified combinations (1.4D and 1.2D+1.6L)")
	f.BoolVarP(&analyzeAll, "all", "a", false, "Show all load combination results")

	// Outputs
	f.BoolVar(&analyzeDiagram, "diagram", false, "Show beam sketch and ASCII diagrams")
	f.IntVar(&analyzeWidth, "chart-width", 60, "Width of ASCII diagrams (characters)")
	f.StringVarP(&analyzeExport, "output", "o", "", "Export diagrams to file (png, svg, pdf)")
	f.StringVar(&analyzeXLSX, "xlsx", "", "Export station table to an Excel workbook")
	f.StringVar(&analyzeReport, "report", "", "Write a PDF calculation report")

	analyzeCmd.MarkFlagsMutuallyExclusive("file", "length")
	analyzeCmd.MarkFlagsMutuallyExclusive("ei", "section")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	bm, err := analyzeBeamInput(cmd.Flags().Changed("type"), cmd.Flags().Changed("ei"))
	if err != nil {
		return err
	}
	cfg, loads, err := bm.Build()
	if err != nil {
		return err
	}

	samples := analyzeSamples
	if samples == 0 {
		samples = appConfig.Samples
	}
	name := bm.Label(0)
	out := cmd.OutOrStdout()

	var res *beam.AnalysisResult
	if analyzeCombos {
		combos := nscp.LoadCombinations
		if analyzeSimplified {
			combos = nscp.SimplifiedCombinations
		}
		gov, all, err := nscp.CalculateGoverningCombination(cfg, loads, combos, samples)
		if err != nil {
			return err
		}
		printCombinations(out, gov, all, analyzeAll)
		res = gov.Result
		loads = gov.Combination.Factor(loads)
		name = fmt.Sprintf("%s, combination %s (%s)", name, gov.Combination.ID, gov.Combination.Description)
	} else {
		if res, err = beam.Analyze(cfg, loads, samples); err != nil {
			return err
		}
	}

	logDiagnostics(name, res)
	printAnalysis(out, name, loads, res)

	if analyzeDiagram {
		fmt.Fprint(out, diagram.DrawBeamSketch(cfg, loads, analyzeWidth))
		fmt.Fprint(out, diagram.DrawASCIIDiagrams(res, analyzeWidth, 10))
	}

	return writeOutputs(out, name, res)
}

// analyzeBeamInput collects the beam definition from a project file or from the
// command line. Loads given as flags are added to a file's loads.
func analyzeBeamInput(typeChanged, eiChanged bool) (project.Beam, error) {
	var bm project.Beam
	if analyzeFile != "" {
		f, err := project.LoadFromFile(analyzeFile)
		if err != nil {
			return bm, err
		}
		if bm, err = pickBeam(f, analyzeBeam); err != nil {
			return bm, err
		}
		if typeChanged {
			bm.Type = analyzeType
		}
	} else {
		if analyzeLength <= 0 {
			return bm, fmt.Errorf("--length is required and must be positive (or use --file)")
		}
		bm = project.Beam{Type: analyzeType, Length: analyzeLength}
	}

	bm.Points = append(bm.Points, analyzePoints...)
	bm.UDLs = append(bm.UDLs, analyzeUDLs...)
	bm.Moments = append(bm.Moments, analyzeMoments...)

	switch {
	case eiChanged:
		bm.EI = analyzeEI
		bm.Section = nil
	case analyzeSection.given():
		sec, err := analyzeSection.build()
		if err != nil {
			return bm, err
		}
		bm.EI = 0
		bm.Section = sec
	}
	return bm, nil
}

func pickBeam(f *project.File, name string) (project.Beam, error) {
	if len(f.Beams) == 0 {
		return project.Beam{}, fmt.Errorf("%s defines no beams", f.Name)
	}
	if name == "" {
		return f.Beams[0], nil
	}
	for _, b := range f.Beams {
		if b.Name == name {
			return b, nil
		}
	}
	return project.Beam{}, fmt.Errorf("beam %q not found in %s", name, f.Name)
}

func logDiagnostics(name string, res *beam.AnalysisResult) {
	for _, d := range res.Diagnostics {
		logger.Warn(d.Message, "code", d.Code, "beam", name)
	}
}

func printAnalysis(out io.Writer, name string, loads beam.LoadSet, res *beam.AnalysisResult) {
	cfg := res.Config

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "                     BEAM ANALYSIS")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Beam: %s\n", name)
	fmt.Fprintln(out)

	// Input summary
	fmt.Fprintln(out, "INPUT DATA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam Type:\t%s\n", cfg.Type)
	fmt.Fprintf(w, "  Span (L):\t%.3f m\n", cfg.Length)
	fmt.Fprintf(w, "  Flexural Rigidity (EI):\t%.4g kN·m²\n", cfg.EI)
	fmt.Fprintf(w, "  Stations:\t%d (dx = %.4g m)\n", res.Samples(), res.Dx)
	w.Flush()
	fmt.Fprintln(out)

	if !loads.IsEmpty() {
		fmt.Fprintln(out, "LOADS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Type\tPosition (m)\tMagnitude\tCase\n")
		fmt.Fprintf(w, "  ────\t────────────\t─────────\t────\n")
		for _, p := range loads.Points {
			fmt.Fprintf(w, "  Point\t%.3f\t%.3f kN\t%s\n", p.Location, p.Magnitude, caseLabel(p.Case))
		}
		for _, u := range loads.UDLs {
			fmt.Fprintf(w, "  UDL\t%.3f - %.3f\t%.3f kN/m\t%s\n", u.Start, u.End, u.Intensity, caseLabel(u.Case))
		}
		for _, m := range loads.Moments {
			fmt.Fprintf(w, "  Moment\t%.3f\t%.3f kN·m\t%s\n", m.Location, m.Magnitude, caseLabel(m.Case))
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "SUPPORT REACTIONS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Total load:\t%.3f kN\n", res.TotalLoad)
	fmt.Fprintf(w, "  RA (x = 0):\t%.3f kN\n", res.Reactions.RA)
	fmt.Fprintf(w, "  RB (x = L):\t%.3f kN\n", res.Reactions.RB)
	w.Flush()
	fmt.Fprintln(out)

	peaks := res.Peaks()
	fmt.Fprintln(out, "INTERNAL FORCES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Max |V|:\t%.3f kN\tat x = %.3f m\n", peaks.MaxShear.Value, peaks.MaxShear.Location)
	fmt.Fprintf(w, "  Max M:\t%.3f kN·m\tat x = %.3f m\n", peaks.MaxMoment.Value, peaks.MaxMoment.Location)
	fmt.Fprintf(w, "  Min M:\t%.3f kN·m\tat x = %.3f m\n", peaks.MinMoment.Value, peaks.MinMoment.Location)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("SLOPE AND DEFLECTION", []string{
		fmt.Sprintf("Slope at A      θA = %.6g rad", res.Summary.SlopeLeft),
		fmt.Sprintf("Slope at B      θB = %.6g rad", res.Summary.SlopeRight),
		fmt.Sprintf("Max deflection  δ  = %.4f mm", res.Summary.MaxDeflectionMM),
	}))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "STATUS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	if len(res.Diagnostics) == 0 {
		fmt.Fprintln(out, "  ✓ Equilibrium checks passed")
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintf(out, "  ⚠ %s: %s\n", d.Code, d.Message)
	}
	fmt.Fprintln(out)
}

func printCombinations(out io.Writer, gov nscp.CombinationResult, all []nscp.CombinationResult, showAll bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "          NSCP 2015 FACTORED LOAD COMBINATIONS")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	if showAll {
		fmt.Fprintln(out, "LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tMu (kN-m)\tat x (m)\n")
		fmt.Fprintf(w, "  ─\t───────────\t─────────\t────────\n")
		for _, c := range all {
			marker := ""
			if c.Combination.ID == gov.Combination.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.3f%s\n", c.Combination.ID, c.Combination.Description, c.Mu, c.Location, marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "  Governing Combination: %s\n", gov.Combination.Description)
	fmt.Fprintf(out, "  Factored Moment (Mu):  %.2f kN-m at x = %.3f m\n", math.Abs(gov.Mu), gov.Location)
	fmt.Fprintln(out)
}

func caseLabel(tag string) string {
	if tag == "" {
		return nscp.CaseDead
	}
	return tag
}

// writeOutputs writes the requested chart, workbook and report files. Bare
// file names are placed in the configured output directory.
func writeOutputs(out io.Writer, name string, res *beam.AnalysisResult) error {
	if analyzeExport != "" {
		path, err := diagram.ExportDiagrams(res, outputPath(analyzeExport))
		if err != nil {
			return fmt.Errorf("export diagrams: %w", err)
		}
		fmt.Fprintf(out, "  Diagrams exported to: %s\n", path)
	}

	if analyzeXLSX != "" {
		path := outputPath(analyzeXLSX)
		err := writeFile(path, func(w io.Writer) error {
			return report.WriteWorkbook(w, report.Info{Project: name}, res)
		})
		if err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
		fmt.Fprintf(out, "  Workbook written to: %s\n", path)
	}

	if analyzeReport != "" {
		path := outputPath(analyzeReport)
		var id string
		err := writeFile(path, func(w io.Writer) error {
			var err error
			id, err = report.WritePDF(w, report.Info{Project: name}, res, true)
			return err
		})
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(out, "  Report %s written to: %s\n", id, path)
	}
	return nil
}

func outputPath(name string) string {
	if filepath.Dir(name) == "." && appConfig.OutputDir != "" {
		return filepath.Join(appConfig.OutputDir, name)
	}
	return name
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
