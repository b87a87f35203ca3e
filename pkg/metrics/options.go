// Package metrics provides Prometheus metrics for the crease wagon-wheel service.
package metrics

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager. Zero values leave the default in place so
// options can be built straight from unvalidated settings.
type Option func(*Manager)

// WithMetricsEnabled turns recording on or off. A disabled manager still
// registers its collectors so /healthz keeps a stable shape.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithNamespace sets the first component of every metric name.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the second component of every metric name.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithMetricPrefix prepends prefix to the metric's own name, after the
// namespace and subsystem.
func WithMetricPrefix(prefix string) Option {
	return func(m *Manager) {
		if p := strings.Trim(prefix, "_"); p != "" {
			m.metricPrefix = p
		}
	}
}

// WithCustomLabels attaches constant labels to every collector.
func WithCustomLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if len(labels) > 0 {
			m.customLabels = maps.Clone(labels)
		}
	}
}

// WithHistogramBuckets sets the upper bounds, in milliseconds, of the
// render and store latency histograms. Unsorted input is sorted.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) == 0 {
			return
		}
		b := slices.Clone(buckets)
		slices.Sort(b)
		m.histogramBuckets = slices.Compact(b)
	}
}

// WithRefreshInterval sets how often the deliveries, batters and runtime
// gauges are refreshed.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.refreshInterval = interval
		}
	}
}

// WithPrometheusRegistry registers collectors on registry instead of the
// default one. Configure always installs its own registry.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
