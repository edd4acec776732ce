// Package metrics provides Prometheus metrics for the PRONO prediction
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the PRONO service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	predictionsTotal   prometheus.Counter
	predictionLatency  prometheus.Histogram
	predictionFallback prometheus.Counter
	modelAccuracy      prometheus.Gauge
	modelVersion       prometheus.Gauge

	// Cache metrics
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Security metrics
	rateLimited  prometheus.Counter
	authRejected prometheus.Counter

	// Error metrics
	errorsByType *prometheus.CounterVec

	// Account metrics
	registeredUsers prometheus.Gauge

	// System performance metrics
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

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "prono",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
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
	auto := promauto.With(m.registry)

	m.predictionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total number of predictions served",
	})

	m.predictionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_latency_milliseconds",
		Help:      "Histogram of prediction generation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.predictionFallback = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_fallbacks_total",
		Help:      "Total number of predictions replaced by the low-confidence fallback",
	})

	m.modelAccuracy = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_accuracy",
		Help:      "Evaluation accuracy of the currently deployed model",
	})

	m.modelVersion = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_version",
		Help:      "Version of the currently deployed prediction models",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_cache_hits_total",
		Help:      "Total number of prediction cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_cache_misses_total",
		Help:      "Total number of prediction cache misses",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.rateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rate_limited_requests_total",
		Help:      "Total number of requests rejected by the rate limiter",
	})

	m.authRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "auth_rejected_requests_total",
		Help:      "Total number of requests rejected for missing or invalid credentials",
	})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total number of request errors by type",
	}, []string{"type"})

	m.registeredUsers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registered_users",
		Help:      "Number of registered user accounts",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the gatherer backing the custom registry, for the
// metrics HTTP handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordPrediction increments the served-predictions counter.
func RecordPrediction() {
	globalManager.predictionsTotal.Inc()
}

// RecordPredictionLatency observes one prediction generation duration.
func RecordPredictionLatency(ms float64) {
	globalManager.predictionLatency.Observe(ms)
}

// RecordPredictionFallback counts a prediction replaced by the fallback.
func RecordPredictionFallback() {
	globalManager.predictionFallback.Inc()
}

// UpdateModelAccuracy sets the deployed model accuracy gauge.
func UpdateModelAccuracy(accuracy float64) {
	globalManager.modelAccuracy.Set(accuracy)
}

// UpdateModelVersion sets the deployed model version gauge.
func UpdateModelVersion(version float64) {
	globalManager.modelVersion.Set(version)
}

// RecordCacheHit counts a prediction cache hit.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss counts a prediction cache miss.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordHTTPRequest counts one handled HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited() {
	globalManager.rateLimited.Inc()
}

// RecordAuthRejected counts a request rejected by the auth middleware.
func RecordAuthRejected() {
	globalManager.authRejected.Inc()
}

// RecordErrorByType counts a request error by its kind.
func RecordErrorByType(errorType string) {
	globalManager.errorsByType.WithLabelValues(errorType).Inc()
}

// UpdateRegisteredUsers sets the account count gauge.
func UpdateRegisteredUsers(n int) {
	globalManager.registeredUsers.Set(float64(n))
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime observes an average GC pause duration.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPauseTime.Observe(ms)
}
