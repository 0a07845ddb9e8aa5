package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherNames(t *testing.T, reg *prometheus.Registry) map[string]bool {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(mfs))
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	return names
}

func TestNewRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	m.RecordDispatcherCall("ok", 0.01)
	m.SetDispatcherQueueDepth(3)
	m.RecordDispatcherPoisoned()
	m.SetEventQueueDepth(5)
	m.RecordEventOverflow()
	m.RecordEventDelivered("odds_update")
	m.RecordStateTransition("OpenWithData")
	m.RecordReadRetry()
	m.RecordReadSkip()

	names := gatherNames(t, reg)
	for _, want := range []string{
		"jvlink_dispatcher_queue_depth",
		"jvlink_dispatcher_calls_total",
		"jvlink_dispatcher_call_duration_seconds",
		"jvlink_dispatcher_poisoned_total",
		"jvlink_event_queue_depth",
		"jvlink_event_overflow_total",
		"jvlink_events_delivered_total",
		"jvlink_session_state_transitions_total",
		"jvlink_session_read_retries_total",
		"jvlink_session_read_skips_total",
	} {
		assert.True(t, names[want], "expected metric %s to be registered", want)
	}
}

func TestNilMetricsMethodsDoNotPanic(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordDispatcherCall("ok", 0.1)
		m.SetDispatcherQueueDepth(1)
		m.RecordDispatcherPoisoned()
		m.SetEventQueueDepth(1)
		m.RecordEventOverflow()
		m.RecordEventDelivered("horse_weight")
		m.RecordStateTransition("Idle")
		m.RecordReadRetry()
		m.RecordReadSkip()
	})
}

func TestNullReturnsNilMetrics(t *testing.T) {
	assert.Nil(t, Null())
}

func TestSetDispatcherQueueDepthUpdatesGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SetDispatcherQueueDepth(7)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "jvlink_dispatcher_queue_depth" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, 7.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}
