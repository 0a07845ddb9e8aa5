package session

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
	"github.com/cariandrum22/Xanthos-sub000/pkg/client"
	"github.com/cariandrum22/Xanthos-sub000/pkg/jverrors"
	"github.com/cariandrum22/Xanthos-sub000/pkg/telemetry"
)

// openKind distinguishes the two Open primitives a Stream can be built
// over (spec.md §4.6 item 5, "real-time variants").
type openKind int

const (
	openNormal openKind = iota
	openRealtime
)

// Stream is the lazy, pull-based iterator spec.md §4.6 item 3 describes.
// It acquires the orchestrator's reentrancy guard on its first Next call
// and releases it (after closing the session) on end-of-stream or an
// explicit Close. A Stream must not be shared across goroutines.
type Stream struct {
	o       *Orchestrator
	sid     string
	req     Request
	kind    openKind
	started bool
	done    bool
	locked  bool
}

// Stream opens request lazily: nothing happens on this call itself
// (spec.md "on first pull, initialises and opens").
func (o *Orchestrator) Stream(sid string, req Request) *Stream {
	return &Stream{o: o, sid: sid, req: req, kind: openNormal}
}

// StreamRealtime is Stream's real-time counterpart, opening via
// OpenRealtime instead of Open.
func (o *Orchestrator) StreamRealtime(sid, spec, key string) *Stream {
	return &Stream{o: o, sid: sid, req: Request{Spec: spec, FromKey: key}, kind: openRealtime}
}

func (s *Stream) start(ctx context.Context) error {
	if !s.o.tryLock() {
		return jverrors.Native(jverrors.InvalidStateFailure("another operation is already in progress"))
	}
	s.locked = true

	if err := s.o.ensureInit(ctx, s.sid); err != nil {
		return err
	}

	s.o.setState(StateOpening)
	var result client.OpenResult
	var err error
	if s.kind == openRealtime {
		result, err = s.openRealtime(ctx)
	} else {
		result, err = s.open(ctx)
	}
	if err != nil {
		s.o.setState(StateError)
		return err
	}

	if result.HasData {
		s.o.setState(StateOpenWithData)
	} else {
		s.o.setState(StateOpenEmpty)
	}
	s.started = true
	return nil
}

func (s *Stream) open(ctx context.Context) (client.OpenResult, error) {
	v, err := s.o.submit(ctx, func(ctx context.Context) (any, error) {
		return s.o.backend.Open(ctx, s.req.Spec, s.req.FromKey, s.req.Option)
	})
	if err != nil {
		return client.OpenResult{}, wrapNative(err)
	}
	return v.(client.OpenResult), nil
}

func (s *Stream) openRealtime(ctx context.Context) (client.OpenResult, error) {
	v, err := s.o.submit(ctx, func(ctx context.Context) (any, error) {
		return s.o.backend.OpenRealtime(ctx, s.req.Spec, s.req.FromKey)
	})
	if err != nil {
		return client.OpenResult{}, wrapNative(err)
	}
	return v.(client.OpenResult), nil
}

// Next pulls the next non-empty payload. It returns (payload, true, nil)
// for a value, (zero, false, nil) at clean end of stream, and (zero,
// false, err) on error — in both end cases the session has already been
// closed and the guard released.
func (s *Stream) Next(ctx context.Context) (Payload, bool, error) {
	if s.done {
		return Payload{}, false, nil
	}
	if !s.started {
		if err := s.start(ctx); err != nil {
			s.finish(ctx)
			return Payload{}, false, err
		}
	}

	s.o.setState(StateDraining)
	for {
		select {
		case <-ctx.Done():
			s.finish(ctx)
			return Payload{}, false, ctx.Err()
		default:
		}

		outcome, err := s.o.readWithRecovery(ctx, s.o.backend.Read)
		if err != nil {
			s.finish(ctx)
			return Payload{}, false, err
		}

		switch outcome.Kind {
		case client.ReadOutcomeEndOfStream:
			s.finish(ctx)
			return Payload{}, false, nil
		case client.ReadOutcomeFileBoundary:
			continue
		case client.ReadOutcomeDownloadPending:
			select {
			case <-time.After(s.o.policy.DownloadPendingDelay):
			case <-ctx.Done():
				s.finish(ctx)
				return Payload{}, false, ctx.Err()
			}
			continue
		case client.ReadOutcomeRecord:
			if len(outcome.Buffer) == 0 {
				continue
			}
			return Payload{Buffer: outcome.Buffer, Filename: outcome.Filename}, true, nil
		}
	}
}

// Close ends the stream early, guaranteeing the underlying session is
// closed and the reentrancy guard released. Idempotent.
func (s *Stream) Close(ctx context.Context) error {
	return s.finish(ctx)
}

func (s *Stream) finish(ctx context.Context) error {
	if s.done {
		return nil
	}
	s.done = true

	var err error
	if s.started {
		s.o.setState(StateClosing)
		// Close must run even when ctx is already cancelled (e.g. the
		// caller cancelled mid-read): submitting with a cancelled ctx
		// risks dispatcher.Submit's own ctx.Done() arm winning the
		// enqueue select and returning before Close is ever dispatched,
		// which would leave the underlying session open.
		_, closeErr := s.o.submit(context.Background(), func(ctx context.Context) (any, error) {
			return nil, s.o.backend.Close(ctx)
		})
		err = wrapNative(closeErr)
		s.o.setState(StateClosed)
		s.o.setState(StateIdle)
	}

	if s.locked {
		s.o.unlock()
		s.locked = false
	}
	return err
}

// FetchAll opens sid/req, reads every payload into memory, and closes
// (spec.md §4.6 item 1).
func (o *Orchestrator) FetchAll(ctx context.Context, sid string, req Request) ([]Payload, error) {
	payloads, _, err := o.fetchAllCounting(ctx, sid, req)
	return payloads, err
}

// FetchAllWithByteCount is FetchAll plus the total byte count read
// (spec.md §4.6 item 2).
func (o *Orchestrator) FetchAllWithByteCount(ctx context.Context, sid string, req Request) ([]Payload, int64, error) {
	return o.fetchAllCounting(ctx, sid, req)
}

func (o *Orchestrator) fetchAllCounting(ctx context.Context, sid string, req Request) ([]Payload, int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "jvlink.fetch_all", telemetry.SessionAttrs(sid, req.Spec, req.FromKey)...)
	defer span.End()

	s := o.Stream(sid, req)
	var payloads []Payload
	var total int64
	for {
		p, ok, err := s.Next(ctx)
		if err != nil {
			span.RecordError(err)
			return payloads, total, err
		}
		if !ok {
			span.SetAttributes(attribute.Int(telemetry.AttrByteCount, int(total)))
			return payloads, total, nil
		}
		payloads = append(payloads, p)
		total += int64(len(p.Buffer))
	}
}

// FetchRange is a convenience wrapper over Stream that collects at most
// limit payloads then cancels and closes (SPEC_FULL.md §4.6a) —
// suitable for smoke-testing a sid against the real service without
// downloading a full dataset.
func (o *Orchestrator) FetchRange(ctx context.Context, sid string, req Request, limit int) ([]Payload, error) {
	ctx, span := telemetry.StartSpan(ctx, "jvlink.fetch_range", telemetry.SessionAttrs(sid, req.Spec, req.FromKey)...)
	defer span.End()

	s := o.Stream(sid, req)
	payloads := make([]Payload, 0, limit)
	for len(payloads) < limit {
		p, ok, err := s.Next(ctx)
		if err != nil {
			span.RecordError(err)
			return payloads, err
		}
		if !ok {
			return payloads, nil
		}
		payloads = append(payloads, p)
	}
	if _, err := o.submit(ctx, func(ctx context.Context) (any, error) {
		return nil, o.backend.Cancel(ctx)
	}); err != nil {
		logger.Warn("session: FetchRange cancel after limit failed", "error", err)
	}
	return payloads, s.Close(ctx)
}

// AsyncItem is one element of a StreamAsync/StreamRealtimeAsync channel.
type AsyncItem struct {
	Payload Payload
	Err     error
}

// StreamAsync is Stream's asynchronous counterpart (spec.md §4.6 item
// 4): it polls at pollInterval between iterations and observes
// cancellation cooperatively, closing out cleanly (no error raised
// through the channel) rather than propagating context.Canceled.
func (o *Orchestrator) StreamAsync(ctx context.Context, sid string, req Request, pollInterval time.Duration) <-chan AsyncItem {
	return o.runAsync(ctx, o.Stream(sid, req), pollInterval)
}

// StreamRealtimeAsync is StreamRealtime's asynchronous counterpart,
// polling until cancelled (spec.md §4.6 item 5).
func (o *Orchestrator) StreamRealtimeAsync(ctx context.Context, sid, spec, key string, pollInterval time.Duration) <-chan AsyncItem {
	return o.runAsync(ctx, o.StreamRealtime(sid, spec, key), pollInterval)
}

func (o *Orchestrator) runAsync(ctx context.Context, s *Stream, pollInterval time.Duration) <-chan AsyncItem {
	if pollInterval <= 0 {
		pollInterval = o.policy.PollInterval
	}
	out := make(chan AsyncItem)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				_ = s.Close(context.Background())
				return
			default:
			}

			p, ok, err := s.Next(ctx)
			if err != nil {
				if ctx.Err() != nil {
					// Cooperative cancellation terminates gracefully,
					// never as an error item (spec.md §4.6).
					return
				}
				select {
				case out <- AsyncItem{Err: err}:
				case <-ctx.Done():
				}
				return
			}
			if !ok {
				return
			}

			select {
			case out <- AsyncItem{Payload: p}:
			case <-ctx.Done():
				_ = s.Close(context.Background())
				return
			}

			select {
			case <-time.After(pollInterval):
			case <-ctx.Done():
				_ = s.Close(context.Background())
				return
			}
		}
	}()
	return out
}
