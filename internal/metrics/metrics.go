// Package metrics exposes Prometheus counters and gauges for the
// Apartment-Confined Dispatcher, Event Pump, and Session Orchestrator
// (SPEC_FULL.md §3b). Grounded on the teacher's per-component Metrics
// structs (internal/adapter/nlm/metrics.go and siblings): a plain
// struct of prometheus collectors, a constructor that registers them
// against a supplied Registerer, and nil-receiver methods so a
// component can be built without metrics wired in at all.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks jvlink_-prefixed Prometheus metrics across the
// dispatcher, event pump, and session orchestrator.
type Metrics struct {
	// DispatcherQueueDepth tracks the number of jobs currently queued
	// on the Apartment-Confined Dispatcher.
	DispatcherQueueDepth prometheus.Gauge

	// DispatcherCallsTotal counts dispatcher calls by outcome
	// ("ok", "error", "timeout").
	DispatcherCallsTotal *prometheus.CounterVec

	// DispatcherCallDuration tracks dispatcher call latency.
	DispatcherCallDuration prometheus.Histogram

	// DispatcherPoisonedTotal counts how many times the dispatcher has
	// been poisoned by a timed-out call.
	DispatcherPoisonedTotal prometheus.Counter

	// EventQueueDepth tracks the Event Pump's current FIFO depth.
	EventQueueDepth prometheus.Gauge

	// EventOverflowTotal counts events dropped because the pump's FIFO
	// was full.
	EventOverflowTotal prometheus.Counter

	// EventsDeliveredTotal counts events successfully delivered to
	// subscribers, by kind.
	EventsDeliveredTotal *prometheus.CounterVec

	// SessionStateTransitionsTotal counts orchestrator state
	// transitions, by the state being entered.
	SessionStateTransitionsTotal *prometheus.CounterVec

	// SessionReadRetriesTotal counts recoverable-by-skip read retries
	// the orchestrator's read loop performed.
	SessionReadRetriesTotal prometheus.Counter

	// SessionReadSkipsTotal counts reads resolved by Skip after
	// exhausting retries.
	SessionReadSkipsTotal prometheus.Counter
}

// New creates Metrics with the jvlink_ prefix and registers every
// collector against reg. Panics if registration fails, since that only
// happens on a programming error at process startup.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DispatcherQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jvlink_dispatcher_queue_depth",
			Help: "Current number of jobs queued on the apartment-confined dispatcher.",
		}),
		DispatcherCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jvlink_dispatcher_calls_total",
			Help: "Total dispatcher calls by outcome.",
		}, []string{"outcome"}),
		DispatcherCallDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jvlink_dispatcher_call_duration_seconds",
			Help:    "Dispatcher call duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		DispatcherPoisonedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jvlink_dispatcher_poisoned_total",
			Help: "Total number of times the dispatcher has been poisoned by a call timeout.",
		}),
		EventQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "jvlink_event_queue_depth",
			Help: "Current depth of the watch-event FIFO.",
		}),
		EventOverflowTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jvlink_event_overflow_total",
			Help: "Total watch-events dropped because the FIFO was full.",
		}),
		EventsDeliveredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jvlink_events_delivered_total",
			Help: "Total watch-events delivered to subscribers, by kind.",
		}, []string{"kind"}),
		SessionStateTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jvlink_session_state_transitions_total",
			Help: "Total session orchestrator state transitions, by entered state.",
		}, []string{"state"}),
		SessionReadRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jvlink_session_read_retries_total",
			Help: "Total recoverable-by-skip read retries performed by the read loop.",
		}),
		SessionReadSkipsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jvlink_session_read_skips_total",
			Help: "Total reads resolved by calling Skip after exhausting retries.",
		}),
	}

	reg.MustRegister(
		m.DispatcherQueueDepth,
		m.DispatcherCallsTotal,
		m.DispatcherCallDuration,
		m.DispatcherPoisonedTotal,
		m.EventQueueDepth,
		m.EventOverflowTotal,
		m.EventsDeliveredTotal,
		m.SessionStateTransitionsTotal,
		m.SessionReadRetriesTotal,
		m.SessionReadSkipsTotal,
	)

	return m
}

// RecordDispatcherCall records one completed dispatcher call.
func (m *Metrics) RecordDispatcherCall(outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.DispatcherCallsTotal.WithLabelValues(outcome).Inc()
	m.DispatcherCallDuration.Observe(durationSeconds)
}

// SetDispatcherQueueDepth updates the dispatcher queue depth gauge.
func (m *Metrics) SetDispatcherQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.DispatcherQueueDepth.Set(float64(depth))
}

// RecordDispatcherPoisoned increments the poisoned counter.
func (m *Metrics) RecordDispatcherPoisoned() {
	if m == nil {
		return
	}
	m.DispatcherPoisonedTotal.Inc()
}

// SetEventQueueDepth updates the event pump FIFO depth gauge.
func (m *Metrics) SetEventQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.EventQueueDepth.Set(float64(depth))
}

// RecordEventOverflow increments the overflow counter.
func (m *Metrics) RecordEventOverflow() {
	if m == nil {
		return
	}
	m.EventOverflowTotal.Inc()
}

// RecordEventDelivered increments the delivered-events counter for
// kind.
func (m *Metrics) RecordEventDelivered(kind string) {
	if m == nil {
		return
	}
	m.EventsDeliveredTotal.WithLabelValues(kind).Inc()
}

// RecordStateTransition increments the transitions counter for the
// state being entered.
func (m *Metrics) RecordStateTransition(state string) {
	if m == nil {
		return
	}
	m.SessionStateTransitionsTotal.WithLabelValues(state).Inc()
}

// RecordReadRetry increments the read-retry counter.
func (m *Metrics) RecordReadRetry() {
	if m == nil {
		return
	}
	m.SessionReadRetriesTotal.Inc()
}

// RecordReadSkip increments the read-skip counter.
func (m *Metrics) RecordReadSkip() {
	if m == nil {
		return
	}
	m.SessionReadSkipsTotal.Inc()
}

// Null returns nil, which every Metrics method above treats as a no-op
// collector — for callers that do not want metrics wired in.
func Null() *Metrics {
	return nil
}
