// Package session implements the Session Orchestrator (spec.md §4.6): the
// stateful layer above client.Contract that owns the open/read/close
// lifecycle, the reentrancy guard, the bounded-retry-then-skip read loop,
// and the typed fetch/stream surface callers actually use.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
	"github.com/cariandrum22/Xanthos-sub000/internal/metrics"
	"github.com/cariandrum22/Xanthos-sub000/pkg/client"
	"github.com/cariandrum22/Xanthos-sub000/pkg/dispatcher"
	"github.com/cariandrum22/Xanthos-sub000/pkg/events"
	"github.com/cariandrum22/Xanthos-sub000/pkg/jverrors"
	"github.com/cariandrum22/Xanthos-sub000/pkg/record"
	"github.com/cariandrum22/Xanthos-sub000/pkg/telemetry"
)

// Request describes one fetch/stream call: the data spec (e.g. "RACE",
// "DIFF") and the from-key/option the native Open primitive expects.
type Request struct {
	Spec    string
	FromKey string
	Option  int
}

// Payload is one non-empty buffer the read loop accumulated, alongside
// the underlying file it came from.
type Payload struct {
	Buffer   []byte
	Filename string
}

// Policy configures the read loop's retry/backoff/polling behaviour.
type Policy struct {
	// DownloadPendingDelay is slept on ReadOutcomeDownloadPending.
	// Default: 500ms.
	DownloadPendingDelay time.Duration

	// RetryCount bounds retries of a recoverable-by-skip error before
	// falling back to Skip. Default: 2.
	RetryCount int

	// RetryBackoffBase is the linear backoff unit: attempt N sleeps
	// RetryBackoffBase * (N+1). Default: 500ms.
	RetryBackoffBase time.Duration

	// CallTimeout bounds each individual dispatcher call.
	CallTimeout time.Duration

	// PollInterval is the default polling cadence for async streams.
	PollInterval time.Duration
}

// DefaultPolicy returns spec.md's stated defaults.
func DefaultPolicy() Policy {
	return Policy{
		DownloadPendingDelay: 500 * time.Millisecond,
		RetryCount:           2,
		RetryBackoffBase:     500 * time.Millisecond,
		CallTimeout:          30 * time.Second,
		PollInterval:         time.Second,
	}
}

// Orchestrator is the Session Orchestrator: one instance owns one
// backend, one dispatcher, and at most one open session at a time.
type Orchestrator struct {
	backend    client.Contract
	dispatcher *dispatcher.Dispatcher
	pump       *events.Pump
	policy     Policy

	state atomic.Int32

	// opLock is the non-reentrant try-acquire guard (spec.md §4.6
	// "Reentrancy guard"): a buffered channel of capacity 1 used purely
	// as a semaphore, acquired with a non-blocking send and released
	// with a receive.
	opLock chan struct{}

	mu             sync.Mutex
	poisoned       bool
	poisonedReason string
	initialised    bool
	sid            string

	metrics *metrics.Metrics
}

// SetMetrics wires m into the orchestrator's state-transition and
// read-loop counters, and into its event pump. The dispatcher's metrics
// are not touched here; they come from its own dispatcher.Config. Nil
// (the default) disables the orchestrator's and the pump's metrics.
func (o *Orchestrator) SetMetrics(m *metrics.Metrics) {
	o.metrics = m
	o.pump.SetMetrics(m)
}

// New creates an Orchestrator over backend, confined to disp, with the
// given policy (DefaultPolicy() if zero-valued fields should fall back
// to spec.md defaults).
func New(backend client.Contract, disp *dispatcher.Dispatcher, policy Policy) *Orchestrator {
	if policy.DownloadPendingDelay <= 0 {
		policy.DownloadPendingDelay = 500 * time.Millisecond
	}
	if policy.RetryCount <= 0 {
		policy.RetryCount = 2
	}
	if policy.RetryBackoffBase <= 0 {
		policy.RetryBackoffBase = 500 * time.Millisecond
	}
	if policy.CallTimeout <= 0 {
		policy.CallTimeout = 30 * time.Second
	}
	if policy.PollInterval <= 0 {
		policy.PollInterval = time.Second
	}
	o := &Orchestrator{
		backend:    backend,
		dispatcher: disp,
		pump:       events.New(0),
		policy:     policy,
		opLock:     make(chan struct{}, 1),
	}
	o.state.Store(int32(StateIdle))
	return o
}

func (o *Orchestrator) State() State { return State(o.state.Load()) }

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
	o.metrics.RecordStateTransition(s.String())
	logger.Debug("session: state transition", "state", s.String())
}

// tryLock attempts the non-blocking reentrancy guard. It never blocks:
// on contention it returns false immediately.
func (o *Orchestrator) tryLock() bool {
	select {
	case o.opLock <- struct{}{}:
		return true
	default:
		return false
	}
}

func (o *Orchestrator) unlock() {
	select {
	case <-o.opLock:
	default:
	}
}

func (o *Orchestrator) isPoisoned() (bool, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.poisoned, o.poisonedReason
}

func (o *Orchestrator) poison(reason string) {
	o.mu.Lock()
	o.poisoned = true
	o.poisonedReason = reason
	o.mu.Unlock()
	o.setState(StatePoisoned)
	logger.Error("session: orchestrator poisoned", "reason", reason)
}

// submit runs job on the dispatcher's confined worker, mapping a
// dispatcher poisoning into the orchestrator's own poisoned state so
// every subsequent call fails fast instead of racing a dead worker.
func (o *Orchestrator) submit(ctx context.Context, job dispatcher.Job) (any, error) {
	v, err := o.dispatcher.Submit(ctx, job)
	if err != nil {
		if err == dispatcher.ErrPoisoned || o.dispatcher.Poisoned() {
			o.poison("dispatcher call timed out")
			return nil, jverrors.Native(jverrors.TimeoutFailure())
		}
		return nil, err
	}
	return v, nil
}

func (o *Orchestrator) ensureInit(ctx context.Context, sid string) error {
	o.mu.Lock()
	already := o.initialised && o.sid == sid
	o.mu.Unlock()
	if already {
		return nil
	}
	_, err := o.submit(ctx, func(ctx context.Context) (any, error) {
		return nil, o.backend.Init(ctx, sid)
	})
	if err != nil {
		return wrapNative(err)
	}
	o.mu.Lock()
	o.initialised = true
	o.sid = sid
	o.mu.Unlock()
	return nil
}

func wrapNative(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*jverrors.LibraryError); ok {
		return err
	}
	return jverrors.Native(jverrors.UnexpectedFailure(err.Error()))
}

// withOperationLock runs fn while holding the non-reentrant guard,
// returning InvalidState immediately on contention rather than queuing
// (spec.md §4.6).
func (o *Orchestrator) withOperationLock(fn func() (any, error)) (any, error) {
	if poisoned, reason := o.isPoisoned(); poisoned {
		return nil, jverrors.Native(jverrors.InvalidStateFailure("poisoned: " + reason))
	}
	if !o.tryLock() {
		return nil, jverrors.Native(jverrors.InvalidStateFailure("another operation is already in progress"))
	}
	defer o.unlock()
	return fn()
}

// GetStatus is a pass-through wrapper with error translation.
func (o *Orchestrator) GetStatus(ctx context.Context) (int, error) {
	v, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return o.backend.Status(ctx)
		})
	})
	if err != nil {
		return 0, wrapNative(err)
	}
	return v.(int), nil
}

// SkipCurrent is a pass-through wrapper with error translation.
func (o *Orchestrator) SkipCurrent(ctx context.Context) error {
	_, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return nil, o.backend.Skip(ctx)
		})
	})
	return wrapNative(err)
}

// CancelDownload is a pass-through wrapper with error translation.
func (o *Orchestrator) CancelDownload(ctx context.Context) error {
	_, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return nil, o.backend.Cancel(ctx)
		})
	})
	return wrapNative(err)
}

// DeleteFile is a pass-through wrapper with error translation.
func (o *Orchestrator) DeleteFile(ctx context.Context, name string) error {
	_, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return nil, o.backend.DeleteFile(ctx, name)
		})
	})
	return wrapNative(err)
}

// GetProperties returns the full property surface (spec.md §4.4's
// property table).
func (o *Orchestrator) GetProperties(ctx context.Context) (client.Properties, error) {
	v, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return o.backend.GetProperties(ctx)
		})
	})
	if err != nil {
		return client.Properties{}, wrapNative(err)
	}
	return v.(client.Properties), nil
}

// SetSaveFlag sets the save-flag property.
func (o *Orchestrator) SetSaveFlag(ctx context.Context, value bool) error {
	_, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return nil, o.backend.SetSaveFlag(ctx, value)
		})
	})
	return wrapNative(err)
}

// SetSavePath sets the save-path property.
func (o *Orchestrator) SetSavePath(ctx context.Context, value string) error {
	_, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return nil, o.backend.SetSavePath(ctx, value)
		})
	})
	return wrapNative(err)
}

// SetServiceKey sets the service-key property.
func (o *Orchestrator) SetServiceKey(ctx context.Context, value string) error {
	_, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return nil, o.backend.SetServiceKey(ctx, value)
		})
	})
	return wrapNative(err)
}

// FetchCourseDiagram fetches the course-diagram image for a race.
func (o *Orchestrator) FetchCourseDiagram(ctx context.Context, raceKey string) ([]byte, error) {
	v, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return o.backend.FetchCourseDiagram(ctx, raceKey)
		})
	})
	if err != nil {
		return nil, wrapNative(err)
	}
	return v.([]byte), nil
}

// FetchSilksBitmap fetches the jockey-silks bitmap for a horse.
func (o *Orchestrator) FetchSilksBitmap(ctx context.Context, horseId string) ([]byte, error) {
	v, err := o.withOperationLock(func() (any, error) {
		return o.submit(ctx, func(ctx context.Context) (any, error) {
			return o.backend.FetchSilksBitmap(ctx, horseId)
		})
	})
	if err != nil {
		return nil, wrapNative(err)
	}
	return v.([]byte), nil
}

// FetchTypedRecords composes FetchAll with the record-codec dispatcher,
// parsing every payload and reporting parse failures per policy.
func (o *Orchestrator) FetchTypedRecords(ctx context.Context, sid string, req Request, policy record.BatchPolicy) ([]record.Record, error) {
	ctx, span := telemetry.StartSpan(ctx, "jvlink.fetch_typed_records", telemetry.SessionAttrs(sid, req.Spec, req.FromKey)...)
	defer span.End()

	payloads, err := o.FetchAll(ctx, sid, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	bufs := make([][]byte, len(payloads))
	for i, p := range payloads {
		bufs[i] = p.Buffer
	}
	records, err := record.ParseBatch(bufs, policy)
	if err != nil {
		span.RecordError(err)
	}
	return records, err
}

// DiagnosticsSnapshot is a point-in-time view of orchestrator state. It
// is filled without taking the operation lock (see Diagnostics), so its
// fields are read one after another rather than as one atomic unit.
type DiagnosticsSnapshot struct {
	State              State
	Poisoned           bool
	PoisonedReason     string
	DispatcherPoisoned bool
	// EventQueueOverflow is not filled in by Diagnostics and is always
	// false in the snapshots it returns.
	EventQueueOverflow bool
}

// Diagnostics returns a DiagnosticsSnapshot without going through the
// reentrancy guard — it is meant to observe in-flight state, including
// while another operation holds the lock, so it reads state directly
// instead of via withOperationLock.
func (o *Orchestrator) Diagnostics() DiagnosticsSnapshot {
	poisoned, reason := o.isPoisoned()
	return DiagnosticsSnapshot{
		State:              o.State(),
		Poisoned:           poisoned,
		PoisonedReason:     reason,
		DispatcherPoisoned: o.dispatcher.Poisoned(),
	}
}
