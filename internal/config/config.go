// Package config holds runtime settings shared by the commands. Values come
// from defaults, then an optional .env file, then the process environment.
// Command-line flags override all of them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

// Environment variables read by Load
const (
	EnvSamples   = "GOBEAM_SAMPLES"
	EnvLogLevel  = "GOBEAM_LOG_LEVEL"
	EnvLogFormat = "GOBEAM_LOG_FORMAT"
	EnvAddr      = "GOBEAM_ADDR"
	EnvOutputDir = "GOBEAM_OUTPUT_DIR"
	EnvWorkers   = "GOBEAM_WORKERS"
	EnvRateLimit = "GOBEAM_RATE_LIMIT"
	EnvRateBurst = "GOBEAM_RATE_BURST"
)

// Config holds the application configuration
type Config struct {
	Samples   int
	LogLevel  string
	LogFormat string
	Addr      string
	OutputDir string
	Workers   int // 0 means one per CPU

	// HTTP requests per second and burst per client; 0 disables limiting
	RateLimit float64
	RateBurst int
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Samples:   beam.DefaultSamples,
		LogLevel:  "info",
		LogFormat: "text",
		Addr:      ":8080",
		OutputDir: "output",
		RateBurst: 20,
	}
}

// Load returns the defaults overridden by the variables found in envFiles
// (missing files are ignored) and in the environment. Variables already set
// in the environment win over .env entries.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	var err error
	if cfg.Samples, err = intEnv(EnvSamples, cfg.Samples); err != nil {
		return Config{}, err
	}
	if cfg.Samples < 2 {
		return Config{}, fmt.Errorf("%s: at least 2 stations are required, got %d", EnvSamples, cfg.Samples)
	}
	if cfg.Workers, err = intEnv(EnvWorkers, cfg.Workers); err != nil {
		return Config{}, err
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("%s: must not be negative, got %d", EnvWorkers, cfg.Workers)
	}
	if v := getEnv(EnvRateLimit, ""); v != "" {
		if cfg.RateLimit, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		if cfg.RateLimit < 0 {
			return Config{}, fmt.Errorf("%s: must not be negative, got %g", EnvRateLimit, cfg.RateLimit)
		}
	}
	if cfg.RateBurst, err = intEnv(EnvRateBurst, cfg.RateBurst); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit > 0 && cfg.RateBurst < 1 {
		return Config{}, fmt.Errorf("%s: must be at least 1 when rate limiting, got %d", EnvRateBurst, cfg.RateBurst)
	}
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = getEnv(EnvLogFormat, cfg.LogFormat)
	cfg.Addr = getEnv(EnvAddr, cfg.Addr)
	cfg.OutputDir = getEnv(EnvOutputDir, cfg.OutputDir)

	return cfg, nil
}

// getEnv returns environment variable value or default if not set.
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
