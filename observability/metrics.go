package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "speed_cameras"

// Metrics holds the Prometheus collectors for the registry.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec   // labels: method, route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: method, route
	CameraOperations    *prometheus.CounterVec   // labels: operation, outcome
	ZipcodeCache        *prometheus.CounterVec   // labels: result={hit,miss}
}

// NewMetrics creates the collectors and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.CameraOperations,
		m.ZipcodeCache,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build
// as many as they like.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
		CameraOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "camera_operations_total",
			Help:      "Camera registry operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		ZipcodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zipcode_cache_total",
			Help:      "Zipcode lookup cache results.",
		}, []string{"result"}),
	}
}

// RecordOperation counts one camera operation outcome.
func (m *Metrics) RecordOperation(operation, outcome string) {
	m.CameraOperations.WithLabelValues(operation, outcome).Inc()
}

// CacheLookup counts a zipcode cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ZipcodeCache.WithLabelValues(result).Inc()
}
