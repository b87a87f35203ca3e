// Package config defines service configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config holding every default.
// - Load layers a YAML file and CREASE_* env vars over those defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StoreDriver is the database/sql driver: sqlite or postgres.
	StoreDriver string `koanf:"store_driver"`

	// StoreDSN is passed to the driver unchanged.
	StoreDSN string `koanf:"store_dsn"`

	// BoundaryReferenceDistance is the shot distance, in metres, drawn at the
	// boundary circle of the caught-out wheel.
	BoundaryReferenceDistance float64 `koanf:"boundary_reference_distance"`

	// WheelSize and ScoringWheelSize are the SVG canvas widths in pixels.
	WheelSize        int `koanf:"wheel_size"`
	ScoringWheelSize int `koanf:"scoring_wheel_size"`

	// CORSAllowedOrigins lists origins allowed to call the JSON API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// Metrics settings. Labels are "name=value" pairs attached to every series.
	MetricsEnabled          bool          `koanf:"metrics_enabled"`
	MetricsNamespace        string        `koanf:"metrics_namespace"`
	MetricsSubsystem        string        `koanf:"metrics_subsystem"`
	MetricsPrefix           string        `koanf:"metrics_prefix"`
	MetricsLabels           []string      `koanf:"metrics_labels"`
	MetricsLatencyBucketsMS []float64     `koanf:"metrics_latency_buckets_ms"`
	MetricsRefreshInterval  time.Duration `koanf:"metrics_refresh_interval"`
}

// Defaults.
const (
	defaultBoundaryReference = 167.0
	defaultWheelSize         = 600
	defaultScoringWheelSize  = 800
	minWheelSize             = 200
	defaultMetricsRefresh    = 10 * time.Second
	minMetricsRefresh        = time.Second
)

// New creates a Config filled with defaults.
func New() *Config {
	return &Config{
		LogLevel:                  "info",
		LogFormat:                 "text",
		Addr:                      ":9080",
		StoreDriver:               "sqlite",
		StoreDSN:                  "file:crease.db?_pragma=busy_timeout(5000)",
		BoundaryReferenceDistance: defaultBoundaryReference,
		WheelSize:                 defaultWheelSize,
		ScoringWheelSize:          defaultScoringWheelSize,
		CORSAllowedOrigins:        []string{"*"},
		MetricsEnabled:            true,
		MetricsNamespace:          "crease",
		MetricsSubsystem:          "wagonwheel",
		MetricsRefreshInterval:    defaultMetricsRefresh,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.StoreDriver != "sqlite" && c.StoreDriver != "postgres":
		return fmt.Errorf("%w: store_driver %q must be sqlite or postgres", ErrInvalidConfig, c.StoreDriver)
	case strings.TrimSpace(c.StoreDSN) == "":
		return fmt.Errorf("%w: store_dsn must not be empty", ErrInvalidConfig)
	case c.BoundaryReferenceDistance <= 0:
		return fmt.Errorf("%w: boundary_reference_distance must be positive", ErrInvalidConfig)
	case c.WheelSize < minWheelSize || c.ScoringWheelSize < minWheelSize:
		return fmt.Errorf("%w: wheel sizes must be at least %d", ErrInvalidConfig, minWheelSize)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	case strings.TrimSpace(c.MetricsNamespace) == "":
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	case c.MetricsRefreshInterval < minMetricsRefresh:
		return fmt.Errorf("%w: metrics_refresh_interval must be at least %s", ErrInvalidConfig, minMetricsRefresh)
	}
	if _, err := c.MetricsLabelMap(); err != nil {
		return err
	}
	for i, b := range c.MetricsLatencyBucketsMS {
		if b <= 0 || (i > 0 && b <= c.MetricsLatencyBucketsMS[i-1]) {
			return fmt.Errorf("%w: metrics_latency_buckets_ms must be positive and increasing", ErrInvalidConfig)
		}
	}
	return nil
}

// MetricsLabelMap parses MetricsLabels into constant labels.
func (c *Config) MetricsLabelMap() (map[string]string, error) {
	labels := make(map[string]string, len(c.MetricsLabels))
	for _, pair := range c.MetricsLabels {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: metrics_labels entry %q must be name=value", ErrInvalidConfig, pair)
		}
		labels[name] = strings.TrimSpace(value)
	}
	return labels, nil
}
