package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for signal reconciliation. All methods are
// safe on a nil receiver.
type Metrics struct {
	ReconcileLatency prometheus.Histogram

	// Reconcile outcomes: matched, unmatched, error
	ReconcileOutcome *prometheus.CounterVec

	SuggestionCount prometheus.Histogram

	ManualLinks *prometheus.CounterVec

	FeedLatency prometheus.Histogram
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReconcileLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ssto_reconcile_duration_seconds",
			Help:    "Duration of signal reconciliation including the auto-link commit",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		ReconcileOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ssto_reconcile_outcomes_total",
			Help: "Reconciliation outcomes by result",
		}, []string{"outcome"}),

		SuggestionCount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ssto_reconcile_suggestions",
			Help:    "Number of suggestions returned per reconciliation",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
		}),

		ManualLinks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ssto_manual_links_total",
			Help: "Manual links by whether an existing link was overridden",
		}, []string{"override"}),

		FeedLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ssto_unmatched_feed_duration_seconds",
			Help:    "Duration of building one unmatched feed page",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) ObserveReconcileLatency(d time.Duration) {
	if m != nil {
		m.ReconcileLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementReconcileOutcome(outcome string) {
	if m != nil {
		m.ReconcileOutcome.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveSuggestions(n int) {
	if m != nil {
		m.SuggestionCount.Observe(float64(n))
	}
}

func (m *Metrics) IncrementManualLink(overridden bool) {
	if m != nil {
		m.ManualLinks.WithLabelValues(strconv.FormatBool(overridden)).Inc()
	}
}

func (m *Metrics) ObserveFeedLatency(d time.Duration) {
	if m != nil {
		m.FeedLatency.Observe(d.Seconds())
	}
}
