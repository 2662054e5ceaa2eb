// Package config defines the dashboard configuration and how it is layered
// from defaults, a YAML file, HAPPYDASH_* environment variables and
// command-line overrides.
package config

import (
	"fmt"
	"slices"
)

// Config contains process configuration.
type Config struct {
	// DataPath is the records JSON file. Empty uses the embedded sample.
	DataPath string `koanf:"data_path"`
	// GeoPath is the country GeoJSON file. Empty uses the embedded sample.
	GeoPath string `koanf:"geo_path"`

	// Year is the initial slider year; 0 starts at the latest year.
	Year int `koanf:"year"`
	// ScatterCount is the number of scatterplot containers at start.
	ScatterCount int `koanf:"scatter_count"`
	// Zoom scales every panel; 1 is the natural size.
	Zoom float64 `koanf:"zoom"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFile receives the TUI's logs. Empty disables logging while the
	// terminal UI is running.
	LogFile string `koanf:"log_file"`

	OTLPEndpoint string `koanf:"otlp_endpoint"`
	// TraceStdout writes spans as JSON to this file when set.
	TraceStdout string `koanf:"trace_stdout"`
	// MetricsAddr serves /metrics when set, e.g. ":9464".
	MetricsAddr string `koanf:"metrics_addr"`
}

// Limits for validated fields.
const (
	MaxScatterCount = 6
	MinZoom         = 0.5
	MaxZoom         = 3.0
)

var logLevels = []string{"debug", "info", "warn", "error"}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		ScatterCount: 2,
		Zoom:         1,
		LogLevel:     "info",
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.ScatterCount < 1 || c.ScatterCount > MaxScatterCount {
		return fmt.Errorf("%w: scatter_count must be between 1 and %d, got %d", ErrInvalidConfig, MaxScatterCount, c.ScatterCount)
	}
	if c.Zoom < MinZoom || c.Zoom > MaxZoom {
		return fmt.Errorf("%w: zoom must be between %v and %v, got %v", ErrInvalidConfig, MinZoom, MaxZoom, c.Zoom)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Year < 0 {
		return fmt.Errorf("%w: year must not be negative", ErrInvalidConfig)
	}
	return nil
}
