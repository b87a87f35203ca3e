// Package metrics provides Prometheus metrics for the crease wagon-wheel service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// defaultLatencyBuckets are in milliseconds, the unit of every latency histogram.
var defaultLatencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // read-only defaults

// Manager manages all Prometheus metrics for the crease service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Wheel Metrics
	wheelRenders       *prometheus.CounterVec
	wheelRenderLatency *prometheus.HistogramVec
	wheelRenderErrors  *prometheus.CounterVec
	skippedRows        prometheus.Counter
	pageWarnings       *prometheus.CounterVec
	summaries          prometheus.Counter
	progressions       prometheus.Counter

	// Store Metrics
	storeQueryLatency *prometheus.HistogramVec
	storeErrors       *prometheus.CounterVec
	deliveriesTotal   prometheus.Gauge
	battersTotal      prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before any handler reads GetRegistry.
func Configure(opts ...Option) *Manager {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
	globalManager = m
	return m
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "crease",
		subsystem:        "wagonwheel",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	// Wheel Metrics - one render per figure kind
	m.wheelRenders = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("wheel_renders_total"),
			Help:        "Total number of wheels rendered by kind",
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)

	m.wheelRenderLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("wheel_render_latency_milliseconds"),
			Help:        "Wheel build and SVG render latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)

	m.wheelRenderErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("wheel_render_errors_total"),
			Help:        "Total number of wheel render failures by kind",
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)

	m.skippedRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("skipped_rows_total"),
		Help:        "Deliveries dropped from wheels for lacking a shot angle",
		ConstLabels: constLabels,
	})

	m.pageWarnings = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("page_warnings_total"),
			Help:        "Warnings surfaced instead of wheels, by reason",
			ConstLabels: constLabels,
		},
		[]string{"reason"},
	)

	m.summaries = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("summaries_total"),
		Help:        "Total number of batting summaries computed",
		ConstLabels: constLabels,
	})

	m.progressions = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("progressions_total"),
		Help:        "Total number of innings progression tables computed",
		ConstLabels: constLabels,
	})

	// Store Metrics
	m.storeQueryLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("store_query_latency_milliseconds"),
			Help:        "Delivery store operation latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"operation"},
	)

	m.storeErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("store_errors_total"),
			Help:        "Total number of delivery store errors by operation",
			ConstLabels: constLabels,
		},
		[]string{"operation"},
	)

	m.deliveriesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("deliveries_total"),
		Help:        "Number of deliveries held by the store",
		ConstLabels: constLabels,
	})

	m.battersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("batters_total"),
		Help:        "Number of distinct batters held by the store",
		ConstLabels: constLabels,
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_endpoint_total"),
			Help:        "Total number of errors by endpoint",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: constLabels,
	})
}

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// RefreshInterval returns how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// RefreshInterval returns the global manager's gauge refresh interval.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// Wheel Metrics Functions.

// RecordWheelRender records one rendered wheel and its latency.
func RecordWheelRender(kind string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.wheelRenders.WithLabelValues(kind).Inc()
	globalManager.wheelRenderLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordWheelRenderError increments the render failure counter for kind.
func RecordWheelRenderError(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.wheelRenderErrors.WithLabelValues(kind).Inc()
}

// RecordSkippedRows adds n deliveries dropped for lacking a shot angle.
func RecordSkippedRows(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.skippedRows.Add(float64(n))
}

// RecordPageWarning increments the warning counter for reason.
func RecordPageWarning(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.pageWarnings.WithLabelValues(reason).Inc()
}

// RecordSummary increments the batting summary counter.
func RecordSummary() {
	if !globalManager.enabled {
		return
	}
	globalManager.summaries.Inc()
}

// RecordProgression increments the innings progression counter.
func RecordProgression() {
	if !globalManager.enabled {
		return
	}
	globalManager.progressions.Inc()
}

// Store Metrics Functions.

// RecordStoreQueryLatency records the latency of a store operation.
func RecordStoreQueryLatency(operation string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeQueryLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordStoreError increments the store error counter for operation.
func RecordStoreError(operation string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeErrors.WithLabelValues(operation).Inc()
}

// UpdateDeliveriesTotal sets the number of stored deliveries.
func UpdateDeliveriesTotal(count int) {
	globalManager.deliveriesTotal.Set(float64(count))
}

// UpdateBattersTotal sets the number of distinct batters.
func UpdateBattersTotal(count int) {
	globalManager.battersTotal.Set(float64(count))
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
