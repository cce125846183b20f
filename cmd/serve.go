package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/server"
)

var (
	serveAddr      string
	serveRateLimit float64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis engine over HTTP",
	Long: `Start an HTTP server exposing the analysis engine.

Endpoints:
  GET  /health         liveness check
  GET  /info           version, default station count, beam types, load cases
  POST /analyze        beam JSON in, analysis JSON out
                       (?samples=n stations, ?points=n to thin the arrays)
  POST /combinations   governing NSCP load combination (?simplified=true)
  POST /report         PDF calculation report

Invalid beams are answered with 422 and the error kind. With a rate
limit set, analysis endpoints answer 429 once a client exceeds it.

Examples:
  gobeam serve --addr :8080
  curl -X POST localhost:8080/analyze \
    -d '{"length": 10, "ei": 200000, "points": [{"location": 5, "magnitude": 10}]}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
		}
		if cmd.Flags().Changed("rate-limit") {
			cfg.RateLimit = serveRateLimit
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.New(cfg, logger).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address (default from GOBEAM_ADDR)")
	serveCmd.Flags().Float64Var(&serveRateLimit, "rate-limit", 0, "Requests per second per client on analysis endpoints, 0 for none (default from GOBEAM_RATE_LIMIT)")
}
