package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/logging"
	"github.com/alexiusacademia/gobeam/internal/version"
)

var (
	// Global settings, filled by PersistentPreRunE
	appConfig config.Config
	logger    = slog.Default()

	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Beam Analysis Tool",
	Long: `gobeam - Go Beam Analyzer

A CLI tool for the analysis of straight beams under point loads,
uniformly distributed loads and applied moments.

This tool helps structural engineers compute:
  - Support reactions
  - Shear force and bending moment diagrams
  - Slope and deflection by numerical integration
  - Governing NSCP 2015 load combinations
  - Flexural rigidity of polygon sections

Results can be printed, charted, exported to Excel or written
as a PDF calculation sheet.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}

		l, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = l
		slog.SetDefault(l)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobeam v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Beam Analyzer                                        ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for shear, moment, slope and deflection analysis")
		fmt.Println("  of straight beams.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Reactions and internal forces by superposition")
		fmt.Println("    • Slope and deflection by numerical integration")
		fmt.Println("    • NSCP 2015 load combinations")
		fmt.Println("    • Batch analysis of JSON, YAML and Excel beam schedules")
		fmt.Println("    • Charts, Excel workbooks and PDF reports")
		fmt.Println("    • HTTP API")
		fmt.Println()
		fmt.Println("  Use 'gobeam --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}
