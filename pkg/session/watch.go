package session

import (
	"context"
	"sync"

	"github.com/cariandrum22/Xanthos-sub000/pkg/events"
)

// StartWatchEvents starts the event pump (spec.md §4.6 item 9, §4.7):
// idempotent, gated by the pump's own Stopped/Starting/Running flag
// rather than the orchestrator's operation lock, since watch-events runs
// concurrently with fetch/stream calls rather than exclusively of them.
func (o *Orchestrator) StartWatchEvents(ctx context.Context, sid string) error {
	if err := o.ensureInit(ctx, sid); err != nil {
		return err
	}
	return o.pump.Start(func(feed func(string)) error {
		_, err := o.submit(ctx, func(ctx context.Context) (any, error) {
			return nil, o.backend.WatchEvent(ctx, feed)
		})
		return wrapNative(err)
	})
}

// StopWatchEvents stops the event pump, closing the native subscription
// first so no new callbacks arrive, then draining the FIFO.
func (o *Orchestrator) StopWatchEvents(ctx context.Context) error {
	_, err := o.submit(ctx, func(ctx context.Context) (any, error) {
		return nil, o.backend.WatchEventClose(ctx)
	})
	o.pump.Stop()
	return wrapNative(err)
}

// Events returns a channel of WatchEvent|err items for subscribers, per
// spec.md §4.7's "observable of WatchEvent | err". Each call registers a
// fresh subscriber; the channel closes when ctx is cancelled.
func (o *Orchestrator) Events(ctx context.Context) <-chan events.Item {
	out := make(chan events.Item, 16)

	var mu sync.Mutex
	closed := false

	o.pump.Subscribe(func(item events.Item) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- item:
		default:
			// Slow subscriber: drop rather than block the pump's single
			// consumer goroutine (spec.md §4.7).
		}
	})
	go func() {
		<-ctx.Done()
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()
	return out
}

// WatchEventsRunning reports whether the event pump is currently
// running.
func (o *Orchestrator) WatchEventsRunning() bool {
	return o.pump.Running()
}
