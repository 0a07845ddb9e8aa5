// Package dispatcher implements the Apartment-Confined Dispatcher (spec.md
// §4.5): every call into the native JV-Link component must run on the same
// OS thread it was created on (COM single-threaded apartment semantics), so
// this package confines exactly one worker goroutine to that thread and
// serialises every call through it. The shape — a bounded job queue, a
// start/stop lifecycle guarded by a stopCh/stoppedCh pair and a started
// flag, per-call completion signalled over a channel — follows
// pkg/payload/transfer.TransferQueue, narrowed from an N-worker pool to
// exactly one worker because a COM apartment accepts calls from a single
// thread only.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
	"github.com/cariandrum22/Xanthos-sub000/internal/metrics"
)

// ErrPoisoned is returned by Submit once the dispatcher's worker has
// abandoned a prior call to its timeout (the native call may still be
// running on the confined thread, so no further calls can be safely
// issued).
var ErrPoisoned = errors.New("dispatcher: worker poisoned by a prior timeout")

// ErrNotStarted is returned by Submit before Start has been called.
var ErrNotStarted = errors.New("dispatcher: not started")

// ErrStopped is returned by Submit after Stop has been called.
var ErrStopped = errors.New("dispatcher: stopped")

// Job is the unit of work the dispatcher's confined worker executes. It
// receives a context solely for cancellation/deadline propagation — the
// job itself still runs to completion or until the native call returns,
// since a COM call in flight on a blocked thread cannot be interrupted.
type Job func(ctx context.Context) (any, error)

type request struct {
	job    Job
	ctx    context.Context
	result chan response
	callID string
}

type response struct {
	value any
	err   error
}

// Config configures the dispatcher's queue depth and per-call timeout.
type Config struct {
	// QueueSize bounds the number of jobs waiting for the worker.
	// Default: 64.
	QueueSize int

	// CallTimeout bounds how long Submit waits for a job before giving up
	// on it and poisoning the dispatcher. Default: 30s.
	CallTimeout time.Duration

	// Metrics receives queue-depth, call-duration, and poisoning
	// counters. Nil (the default) disables metrics entirely.
	Metrics *metrics.Metrics
}

// DefaultConfig returns the dispatcher's default queue depth and timeout.
func DefaultConfig() Config {
	return Config{QueueSize: 64, CallTimeout: 30 * time.Second}
}

// Dispatcher confines all calls submitted to it to a single locked OS
// thread, processed one at a time in submission order.
type Dispatcher struct {
	queue       chan request
	callTimeout time.Duration
	metrics     *metrics.Metrics

	wg        sync.WaitGroup
	stopCh    chan struct{}
	stoppedCh chan struct{}

	mu       sync.Mutex
	started  bool
	stopped  bool
	poisoned bool
}

// New creates a Dispatcher. It does not start the confined worker — call
// Start for that.
func New(cfg Config) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}
	return &Dispatcher{
		queue:       make(chan request, cfg.QueueSize),
		callTimeout: cfg.CallTimeout,
		metrics:     cfg.Metrics,
		stopCh:      make(chan struct{}),
		stoppedCh:   make(chan struct{}),
	}
}

// Start launches the single confined worker goroutine.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	logger.Info("dispatcher: starting confined worker")

	d.wg.Add(1)
	go d.worker()

	go func() {
		d.wg.Wait()
		close(d.stoppedCh)
	}()
}

// Stop signals the confined worker to exit after draining its queue, and
// waits up to timeout for it to do so.
func (d *Dispatcher) Stop(timeout time.Duration) {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.stopCh)

	select {
	case <-d.stoppedCh:
		logger.Info("dispatcher: confined worker stopped gracefully")
	case <-time.After(timeout):
		logger.Warn("dispatcher: stop timed out, worker thread abandoned")
	}
}

// Poisoned reports whether a prior Submit timed out and abandoned the
// confined thread. Once poisoned, a Dispatcher never recovers — the
// caller must discard it (and, in the native backend, the COM object it
// confines) and construct a fresh one.
func (d *Dispatcher) Poisoned() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.poisoned
}

// Submit enqueues job and blocks until it completes, the dispatcher's
// call timeout elapses, or ctx is cancelled. A timeout poisons the
// dispatcher: the confined thread may still be blocked inside the native
// call, so no further job can safely share it.
func (d *Dispatcher) Submit(ctx context.Context, job Job) (any, error) {
	d.mu.Lock()
	switch {
	case !d.started:
		d.mu.Unlock()
		return nil, ErrNotStarted
	case d.stopped:
		d.mu.Unlock()
		return nil, ErrStopped
	case d.poisoned:
		d.mu.Unlock()
		return nil, ErrPoisoned
	}
	d.mu.Unlock()

	callID := uuid.NewString()
	req := request{job: job, ctx: ctx, result: make(chan response, 1), callID: callID}
	started := time.Now()

	select {
	case d.queue <- req:
		d.metrics.SetDispatcherQueueDepth(len(d.queue))
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.stopCh:
		return nil, ErrStopped
	}

	timer := time.NewTimer(d.callTimeout)
	defer timer.Stop()

	select {
	case res := <-req.result:
		outcome := "ok"
		if res.err != nil {
			outcome = "error"
		}
		d.metrics.RecordDispatcherCall(outcome, time.Since(started).Seconds())
		return res.value, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		d.mu.Lock()
		d.poisoned = true
		d.mu.Unlock()
		d.metrics.RecordDispatcherCall("timeout", time.Since(started).Seconds())
		d.metrics.RecordDispatcherPoisoned()
		logger.Error("dispatcher: call exceeded timeout, poisoning worker",
			"call_id", callID, "timeout", d.callTimeout.String())
		return nil, fmt.Errorf("dispatcher: call %s exceeded %s: %w", callID, d.callTimeout, ErrPoisoned)
	}
}

// worker is the single confined goroutine. It locks itself to its OS
// thread for its entire lifetime, matching the native component's
// apartment-threading requirement (runtime.LockOSThread), and processes
// one request at a time.
func (d *Dispatcher) worker() {
	defer d.wg.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-d.stopCh:
			d.drain()
			return
		case req := <-d.queue:
			d.process(req)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case req := <-d.queue:
			d.process(req)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(req request) {
	value, err := req.job(req.ctx)
	if err != nil {
		logger.Debug("dispatcher: call returned error", "call_id", req.callID, "error", err)
	}
	select {
	case req.result <- response{value: value, err: err}:
	default:
		// The submitter already gave up (timeout/ctx cancel) — the
		// dispatcher is poisoned in the timeout case, so this result
		// has no one left to receive it.
	}
}
