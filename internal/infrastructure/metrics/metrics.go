package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the planner's Prometheus metrics. A nil *Metrics is valid
// and records nothing, so wiring metrics stays optional.
type Metrics struct {
	MutationsTotal     *prometheus.CounterVec
	SubmissionsTotal   *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
}

// New creates and registers all metrics against the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planfolio_mutations_total",
				Help: "Total number of plan mutations",
			},
			[]string{"op", "collection"},
		),
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planfolio_submissions_total",
				Help: "Total number of simulation submissions by outcome",
			},
			[]string{"outcome"},
		),
		SubmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "planfolio_submission_duration_seconds",
			Help:    "Duration of simulation submissions",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// RecordMutation counts one plan mutation.
func (m *Metrics) RecordMutation(op, collection string) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabelValues(op, collection).Inc()
}

// RecordSubmission counts one submission outcome. Rejected submissions carry
// no duration.
func (m *Metrics) RecordSubmission(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
	if outcome != "rejected" {
		m.SubmissionDuration.Observe(d.Seconds())
	}
}
