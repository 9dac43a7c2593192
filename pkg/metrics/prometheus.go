// Package metrics provides Prometheus metrics for the livescores refresh service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Latency buckets in milliseconds. Provider calls routinely take a few hundred ms.
var defaultLatencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Refresh cycle
	cyclesTotal         *prometheus.CounterVec
	cycleDuration       prometheus.Histogram
	cyclesRejected      prometheus.Counter
	lastCycleUnix       prometheus.Gauge
	activeSubscriptions prometheus.Gauge
	decisions           *prometheus.CounterVec
	retirements         prometheus.Counter

	// Providers
	fetches      *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec

	// Score cache
	cacheReads  *prometheus.CounterVec
	cacheWrites *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init rebuilds the global manager on a fresh registry with opts applied.
// Call it once at startup, before anything records or GetRegistry is served.
func Init(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(customRegistry))...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "livescores",
		subsystem:        "refresh",
		histogramBuckets: defaultLatencyBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.cyclesTotal = auto.NewCounterVec(
		m.counterOpts("cycles_total", "Refresh cycles by outcome (ok, partial, failed)"),
		[]string{"outcome"},
	)
	m.cycleDuration = auto.NewHistogram(
		m.histogramOpts("cycle_duration_milliseconds", "Wall time of one refresh cycle", m.histogramBuckets),
	)
	m.cyclesRejected = auto.NewCounter(
		m.counterOpts("cycles_rejected_total", "Cycle triggers rejected because a cycle was already in flight"),
	)
	m.lastCycleUnix = auto.NewGauge(
		m.gaugeOpts("last_cycle_unix", "Unix timestamp of the last completed refresh cycle"),
	)
	m.activeSubscriptions = auto.NewGauge(
		m.gaugeOpts("active_subscriptions", "Subscriptions in the active set at the start of the last cycle"),
	)
	m.decisions = auto.NewCounterVec(
		m.counterOpts("decisions_total", "Staleness decisions by outcome and reason"),
		[]string{"decision", "reason"},
	)
	m.retirements = auto.NewCounter(
		m.counterOpts("retirements_total", "Subscriptions removed after a terminal snapshot was cached"),
	)

	m.fetches = auto.NewCounterVec(
		m.counterOpts("provider_fetches_total", "Provider fetches by service and outcome"),
		[]string{"service", "outcome"},
	)
	m.fetchLatency = auto.NewHistogramVec(
		m.histogramOpts("provider_fetch_latency_milliseconds", "Provider fetch latency in milliseconds", m.histogramBuckets),
		[]string{"service"},
	)

	m.cacheReads = auto.NewCounterVec(
		m.counterOpts("cache_reads_total", "Score cache reads by result (hit, miss, malformed, error)"),
		[]string{"result"},
	)
	m.cacheWrites = auto.NewCounterVec(
		m.counterOpts("cache_writes_total", "Score cache writes by result (ok, error)"),
		[]string{"result"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// Refresh cycle metrics.

// RecordCycle records a finished cycle and its duration.
func RecordCycle(outcome string, durationMs float64, finishedUnix int64) {
	globalManager.cyclesTotal.WithLabelValues(outcome).Inc()
	globalManager.cycleDuration.Observe(durationMs)
	globalManager.lastCycleUnix.Set(float64(finishedUnix))
}

// RecordCycleRejected counts a trigger that found a cycle already running.
func RecordCycleRejected() {
	globalManager.cyclesRejected.Inc()
}

// UpdateActiveSubscriptions sets the active subscription gauge.
func UpdateActiveSubscriptions(count int) {
	globalManager.activeSubscriptions.Set(float64(count))
}

// RecordDecision counts one staleness decision.
func RecordDecision(decision, reason string) {
	globalManager.decisions.WithLabelValues(decision, reason).Inc()
}

// RecordRetirement counts one retired subscription.
func RecordRetirement() {
	globalManager.retirements.Inc()
}

// Provider metrics.

// RecordFetch counts one provider fetch and observes its latency.
func RecordFetch(service, outcome string, latencyMs float64) {
	globalManager.fetches.WithLabelValues(service, outcome).Inc()
	globalManager.fetchLatency.WithLabelValues(service).Observe(latencyMs)
}

// Cache metrics.

// RecordCacheRead counts one cache read by result.
func RecordCacheRead(result string) {
	globalManager.cacheReads.WithLabelValues(result).Inc()
}

// RecordCacheWrite counts one cache write by result.
func RecordCacheWrite(result string) {
	globalManager.cacheWrites.WithLabelValues(result).Inc()
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
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
