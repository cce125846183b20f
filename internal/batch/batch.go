// Package batch analyzes many beams concurrently
package batch

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/project"
)

// Outcome is the result of one beam in a batch. Exactly one of Result and
// Err is set.
type Outcome struct {
	ID     string
	Name   string
	Result *beam.AnalysisResult
	Err    error
}

// Run analyzes every beam with at most workers analyses in flight and
// returns the outcomes in input order. A failing beam does not stop the
// others; only cancellation of ctx does, in which case ctx.Err() is
// returned together with the outcomes gathered so far.
func Run(ctx context.Context, beams []project.Beam, samples, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := make([]Outcome, len(beams))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, bm := range beams {
		out[i] = Outcome{ID: uuid.New().String(), Name: bm.Label(i)}
		if err := gctx.Err(); err != nil {
			out[i].Err = err
			continue
		}

		i, bm := i, bm
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return err
			}
			out[i].Result, out[i].Err = analyze(bm, samples)
			if out[i].Err != nil {
				slog.WarnContext(gctx, "beam analysis failed",
					"job", out[i].ID, "beam", out[i].Name, "error", out[i].Err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}

func analyze(bm project.Beam, samples int) (*beam.AnalysisResult, error) {
	cfg, loads, err := bm.Build()
	if err != nil {
		return nil, err
	}
	return beam.Analyze(cfg, loads, samples)
}

// Failed counts the outcomes that carry an error
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
