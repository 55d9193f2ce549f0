// Package metrics provides Prometheus metrics for the marathon shoe analysis service.
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

// Manager manages all Prometheus metrics for the analysis service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	rowBuckets       []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset Metrics - The loaded corpus
	datasetRecords      prometheus.Gauge
	datasetBrands       prometheus.Gauge
	datasetEvents       prometheus.Gauge
	datasetYears        prometheus.Gauge
	datasetLoads        prometheus.Counter
	datasetLoadErrors   prometheus.Counter
	datasetLoadDuration prometheus.Histogram

	// Query Metrics - Analytical request volume and latency by kind
	queries          *prometheus.CounterVec
	queryLatency     *prometheus.HistogramVec
	queryResultRows  *prometheus.HistogramVec
	queryErrors      *prometheus.CounterVec
	insufficientData *prometheus.CounterVec

	// Export Metrics - Tabular downloads
	exports      *prometheus.CounterVec
	exportRows   *prometheus.CounterVec
	exportErrors *prometheus.CounterVec

	// Suggestion Metrics - Brand search assist
	suggestQueries prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "marathon",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
		rowBuckets:       []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Dataset Metrics - Size and freshness of the loaded corpus
	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_records",
		Help:      "Number of observations in the loaded dataset",
	})

	m.datasetBrands = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_brands",
		Help:      "Number of distinct brands in the loaded dataset",
	})

	m.datasetEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_events",
		Help:      "Number of distinct race events in the loaded dataset",
	})

	m.datasetYears = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_years",
		Help:      "Number of distinct years covered by the loaded dataset",
	})

	m.datasetLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loads_total",
		Help:      "Total number of dataset load attempts",
	})

	m.datasetLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_errors_total",
		Help:      "Total number of failed dataset loads",
	})

	m.datasetLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_duration_milliseconds",
		Help:      "Dataset load and validation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Query Metrics - Analytical request volume and latency
	m.queries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "queries_total",
			Help:      "Total number of analytical queries by kind",
		},
		[]string{"kind"},
	)

	m.queryLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "query_latency_milliseconds",
			Help:      "Analytical query latency in milliseconds by kind",
			Buckets:   m.histogramBuckets,
		},
		[]string{"kind"},
	)

	m.queryResultRows = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "query_result_rows",
			Help:      "Result row counts of analytical queries by kind",
			Buckets:   m.rowBuckets,
		},
		[]string{"kind"},
	)

	m.queryErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "query_errors_total",
			Help:      "Total number of failed analytical queries by kind and error type",
		},
		[]string{"kind", "error_type"},
	)

	m.insufficientData = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "insufficient_data_total",
			Help:      "Total number of trend computations skipped for lack of data",
		},
		[]string{"kind"},
	)

	// Export Metrics - Tabular downloads
	m.exports = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "exports_total",
			Help:      "Total number of table exports by format",
		},
		[]string{"format"},
	)

	m.exportRows = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "export_rows_total",
			Help:      "Total number of rows written to exports by format",
		},
		[]string{"format"},
	)

	m.exportErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "export_errors_total",
			Help:      "Total number of failed exports by format",
		},
		[]string{"format"},
	)

	// Suggestion Metrics
	m.suggestQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggest_queries_total",
		Help:      "Total number of brand suggestion lookups",
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// Dataset Metrics Functions.

// SetDatasetInfo sets the size gauges for the loaded dataset.
func SetDatasetInfo(records, brands, events, years int) {
	globalManager.datasetRecords.Set(float64(records))
	globalManager.datasetBrands.Set(float64(brands))
	globalManager.datasetEvents.Set(float64(events))
	globalManager.datasetYears.Set(float64(years))
}

// RecordDatasetLoad records a successful dataset load and its duration.
func RecordDatasetLoad(durationMs float64) {
	globalManager.datasetLoads.Inc()
	globalManager.datasetLoadDuration.Observe(durationMs)
}

// RecordDatasetLoadError increments the failed load counter.
func RecordDatasetLoadError() {
	globalManager.datasetLoads.Inc()
	globalManager.datasetLoadErrors.Inc()
}

// Query Metrics Functions.

// RecordQuery increments the query counter for a kind.
func RecordQuery(kind string) {
	globalManager.queries.WithLabelValues(kind).Inc()
}

// RecordQueryLatency records query latency in milliseconds for a kind.
func RecordQueryLatency(kind string, latencyMs float64) {
	globalManager.queryLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordQueryRows records the result row count of a query.
func RecordQueryRows(kind string, rows int) {
	globalManager.queryResultRows.WithLabelValues(kind).Observe(float64(rows))
}

// RecordQueryError increments the query error counter.
func RecordQueryError(kind, errorType string) {
	globalManager.queryErrors.WithLabelValues(kind, errorType).Inc()
}

// RecordInsufficientData counts a trend computation skipped for lack of data.
func RecordInsufficientData(kind string) {
	globalManager.insufficientData.WithLabelValues(kind).Inc()
}

// Export Metrics Functions.

// RecordExport records a completed export and its row count.
func RecordExport(format string, rows int) {
	globalManager.exports.WithLabelValues(format).Inc()
	globalManager.exportRows.WithLabelValues(format).Add(float64(rows))
}

// RecordExportError increments the failed export counter.
func RecordExportError(format string) {
	globalManager.exportErrors.WithLabelValues(format).Inc()
}

// Suggestion Metrics Functions.

// RecordSuggestQuery increments the suggestion lookup counter.
func RecordSuggestQuery() {
	globalManager.suggestQueries.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
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

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
