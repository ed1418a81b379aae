// Package metrics holds Prometheus instrumentation for the HTTP surface,
// separate from internal/validation/metrics's engine-level counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's HTTP-layer Prometheus metrics.
type Metrics struct {
	RequestsHandled *prometheus.CounterVec
}

// New creates and registers all HTTP-layer Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestsHandled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rodeo_validate_http_requests_total",
			Help: "Total HTTP requests handled, by route and status class",
		}, []string{"route", "status"}),
	}
}

// IncrementRequest records one handled HTTP request.
func (m *Metrics) IncrementRequest(route, status string) {
	if m != nil {
		m.RequestsHandled.WithLabelValues(route, status).Inc()
	}
}
