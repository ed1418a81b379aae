// Package metrics provides observability for the validation engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus instrumentation for a validation run.
type Metrics struct {
	// ResolutionOutcome counts Pass 1 registrant resolutions by kind
	// (perfect, candidates, none).
	ResolutionOutcome *prometheus.CounterVec

	// IssuesEmitted counts issues by problem kind.
	IssuesEmitted *prometheus.CounterVec

	// ValidateLatency is the duration of a full Validate call.
	ValidateLatency prometheus.Histogram
}

// New registers and returns a fresh Metrics instance.
func New() *Metrics {
	return &Metrics{
		ResolutionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rodeo_validation_resolution_outcomes_total",
			Help: "Total Pass 1 registrant resolutions by outcome kind",
		}, []string{"kind"}),

		IssuesEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rodeo_validation_issues_total",
			Help: "Total issues emitted by problem kind",
		}, []string{"problem"}),

		ValidateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rodeo_validation_validate_duration_seconds",
			Help:    "Duration of a full batch validation call",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementResolution records one Pass 1 resolution outcome.
func (m *Metrics) IncrementResolution(kind string) {
	if m != nil {
		m.ResolutionOutcome.WithLabelValues(kind).Inc()
	}
}

// IncrementIssue records one emitted issue.
func (m *Metrics) IncrementIssue(problem string) {
	if m != nil {
		m.IssuesEmitted.WithLabelValues(problem).Inc()
	}
}

// ObserveValidateLatency records the duration of a Validate call.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}
