// Package monitoring provides Prometheus metrics for the application.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	AIRequests        *prometheus.CounterVec
	AIRequestDuration *prometheus.HistogramVec
	StoreOperations   *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// NewMetrics registers the application collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "breadbook_ai_requests_total",
			Help: "AI service requests by operation and status",
		}, []string{"operation", "status"}),

		AIRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "breadbook_ai_request_duration_seconds",
			Help:    "AI service request latency by operation",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"operation"}),

		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "breadbook_store_operations_total",
			Help: "Recipe store operations by kind and status",
		}, []string{"operation", "status"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "breadbook_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "breadbook_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(seconds)
}

// ObserveAI records one AI call outcome.
func (m *Metrics) ObserveAI(operation, status string, seconds float64) {
	m.AIRequests.WithLabelValues(operation, status).Inc()
	m.AIRequestDuration.WithLabelValues(operation).Observe(seconds)
}

// ObserveStore records one persistence operation outcome.
func (m *Metrics) ObserveStore(operation, status string) {
	m.StoreOperations.WithLabelValues(operation, status).Inc()
}
