package cmd

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/batch"
	"github.com/alexiusacademia/gobeam/internal/project"
	"github.com/alexiusacademia/gobeam/internal/report"
)

var (
	batchFile      string
	batchWorkers   int
	batchSamples   int
	batchReportDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every beam of a project file",
	Long: `Analyze all beams listed in a project file concurrently and print
one summary line per beam. A beam that fails validation is reported
and does not stop the others.

Supported files:
  .json, .yaml, .yml   {"name": ..., "beams": [{...}, ...]}
  .xlsx                one beam per row: name, type, length_m, ei_knm2,
                       points, udls, moments (loads as loc:P;... strings)

Examples:
  gobeam batch --file floor.yaml
  gobeam batch -f schedule.xlsx --workers 4 --reports out/`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Project file (.json, .yaml, .xlsx) [required]")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent analyses (default from GOBEAM_WORKERS or one per CPU)")
	batchCmd.Flags().IntVarP(&batchSamples, "samples", "n", 0, "Number of stations (default from GOBEAM_SAMPLES or 500)")
	batchCmd.Flags().StringVar(&batchReportDir, "reports", "", "Write one PDF report per successful beam into this directory")
	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	f, err := project.LoadFromFile(batchFile)
	if err != nil {
		return err
	}

	workers := batchWorkers
	if workers == 0 {
		workers = appConfig.Workers
	}
	samples := batchSamples
	if samples == 0 {
		samples = appConfig.Samples
	}

	logger.Info("batch started", "project", f.Name, "beams", len(f.Beams), "workers", workers)
	outcomes, err := batch.Run(cmd.Context(), f.Beams, samples, workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printBatch(out, f, outcomes)

	if batchReportDir != "" {
		for _, o := range outcomes {
			if o.Err != nil {
				continue
			}
			path := filepath.Join(batchReportDir, reportFileName(o.Name))
			err := writeFile(path, func(w io.Writer) error {
				_, err := report.WritePDF(w, report.Info{Project: f.Name, Title: "Beam Analysis Report: " + o.Name}, o.Result, true)
				return err
			})
			if err != nil {
				return fmt.Errorf("report for %s: %w", o.Name, err)
			}
		}
		fmt.Fprintf(out, "  Reports written to: %s\n", batchReportDir)
	}

	if n := batch.Failed(outcomes); n > 0 {
		return fmt.Errorf("%d of %d beams failed", n, len(outcomes))
	}
	return nil
}

func printBatch(out io.Writer, f *project.File, outcomes []batch.Outcome) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     BATCH ANALYSIS - %s\n", strings.ToUpper(f.Name))
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam\tL (m)\tRA (kN)\tRB (kN)\tMax |M| (kN·m)\tδmax (mm)\tStatus\n")
	fmt.Fprintf(w, "  ────\t─────\t───────\t───────\t──────────────\t─────────\t──────\n")
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "  %s\t-\t-\t-\t-\t-\t✗ %v\n", o.Name, o.Err)
			continue
		}
		r := o.Result
		p := r.Peaks()
		mu := math.Max(math.Abs(p.MaxMoment.Value), math.Abs(p.MinMoment.Value))
		status := "✓"
		if len(r.Diagnostics) > 0 {
			codes := make([]string, len(r.Diagnostics))
			for i, d := range r.Diagnostics {
				codes[i] = d.Code
			}
			status = "⚠ " + strings.Join(codes, ", ")
		}
		fmt.Fprintf(w, "  %s\t%.2f\t%.3f\t%.3f\t%.3f\t%.4f\t%s\n",
			o.Name, r.Config.Length, r.Reactions.RA, r.Reactions.RB, mu, r.Summary.MaxDeflectionMM, status)
		logDiagnostics(o.Name, r)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func reportFileName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return clean + ".pdf"
}
