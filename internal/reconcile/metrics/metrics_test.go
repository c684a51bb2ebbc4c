package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveReconcileLatency(time.Millisecond)
		m.IncrementReconcileOutcome("matched")
		m.ObserveSuggestions(3)
		m.IncrementManualLink(true)
		m.ObserveFeedLatency(time.Millisecond)
	})
}

func TestCounters(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.IncrementReconcileOutcome("matched")
	m.IncrementReconcileOutcome("matched")
	m.IncrementReconcileOutcome("unmatched")
	m.IncrementManualLink(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReconcileOutcome.WithLabelValues("matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconcileOutcome.WithLabelValues("unmatched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ManualLinks.WithLabelValues("true")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ManualLinks.WithLabelValues("false")))
}
