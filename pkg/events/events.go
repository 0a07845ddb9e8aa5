// Package events implements the Event Pump (spec.md §4.7): a bounded FIFO
// fed by the native component's callback on the dispatcher's worker
// thread, drained by one dedicated consumer goroutine that parses each
// raw key into a WatchEvent and fans it out to subscribers. The
// queue/consumer/started-flag shape follows
// pkg/payload/transfer.TransferQueue, narrowed to a single always-draining
// consumer instead of a worker pool, since event ordering (not
// throughput) is what matters here.
package events

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
	"github.com/cariandrum22/Xanthos-sub000/internal/metrics"
	"github.com/cariandrum22/Xanthos-sub000/pkg/jverrors"
)

// defaultCapacity is the FIFO's default bound (spec.md §4.7).
const defaultCapacity = 10_000

// Kind names one of the real-time request codes a raw key's first four
// characters identify (spec.md §4.3 "Event kind maps onto a fixed
// table").
type Kind int

const (
	KindUnknown Kind = iota
	KindHorseWeight
	KindPayoffConfirmed
	KindOddsUpdate
)

func (k Kind) String() string {
	switch k {
	case KindHorseWeight:
		return "horse_weight"
	case KindPayoffConfirmed:
		return "payoff_confirmed"
	case KindOddsUpdate:
		return "odds_update"
	default:
		return "unknown"
	}
}

var kindTable = map[string]Kind{
	"0B11": KindHorseWeight,
	"0B12": KindPayoffConfirmed,
	"0B16": KindOddsUpdate,
}

// WatchEvent is a parsed real-time notification: the four-character data
// kind, the full raw key it was parsed from, and whatever suffix follows
// the kind prefix (typically a race or schedule key).
type WatchEvent struct {
	Kind   Kind
	Spec   string
	Suffix string
	Raw    string
}

// ParseWatchEvent parses a raw key (e.g. "0B1220240101...") into a
// WatchEvent. A key shorter than the four-character kind prefix is a
// parse failure.
func ParseWatchEvent(raw string) (WatchEvent, error) {
	if len(raw) < 4 {
		return WatchEvent{}, jverrors.Native(jverrors.UnexpectedFailure("watch key shorter than 4 characters"))
	}
	spec := strings.ToUpper(raw[:4])
	return WatchEvent{
		Kind:   kindTable[spec],
		Spec:   spec,
		Suffix: raw[4:],
		Raw:    raw,
	}, nil
}

// Item is what the consumer hands to subscribers: either a parsed event
// or an error (overflow, or a key that failed to parse).
type Item struct {
	Event WatchEvent
	Err   error
}

// Subscriber receives Items in arrival order. A Subscriber must not
// block: the pump calls every subscriber synchronously from its single
// consumer goroutine, and a panicking subscriber is recovered and logged
// rather than allowed to stop the pump (spec.md §4.7).
type Subscriber func(Item)

type pumpState int32

const (
	stateStopped pumpState = iota
	stateStarting
	stateRunning
)

// Pump is the Event Pump. Zero value is not usable; construct with New.
type Pump struct {
	capacity int

	state atomic.Int32

	mu          sync.Mutex
	queue       chan string
	overflow    atomic.Int64
	done        chan struct{}
	subscribers []Subscriber
	subMu       sync.RWMutex

	metrics *metrics.Metrics
}

// SetMetrics wires m into the pump's overflow/delivery/queue-depth
// counters. Call before Start; nil (the default) disables metrics.
func (p *Pump) SetMetrics(m *metrics.Metrics) {
	p.metrics = m
}

// New creates a Pump with the given FIFO capacity (0 selects the
// spec.md default of 10,000).
func New(capacity int) *Pump {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	p := &Pump{capacity: capacity}
	p.state.Store(int32(stateStopped))
	return p
}

// Subscribe registers fn to receive every Item the pump emits from this
// point on.
func (p *Pump) Subscribe(fn Subscriber) {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Start transitions Stopped -> Starting -> Running and launches the
// consumer goroutine. register is called while the pump is Starting and
// should install the native callback (calling Feed for each raw key);
// its error, if any, aborts the start and leaves the pump Stopped. Start
// is idempotent: calling it while already Starting or Running is a no-op.
func (p *Pump) Start(register func(feed func(string)) error) error {
	if !p.state.CompareAndSwap(int32(stateStopped), int32(stateStarting)) {
		return nil
	}

	p.mu.Lock()
	p.queue = make(chan string, p.capacity)
	p.done = make(chan struct{})
	queue := p.queue
	done := p.done
	p.mu.Unlock()

	if err := register(func(key string) { p.feed(queue, key) }); err != nil {
		p.state.Store(int32(stateStopped))
		return err
	}

	if !p.state.CompareAndSwap(int32(stateStarting), int32(stateRunning)) {
		// Stop() ran concurrently while we were still Starting — the
		// subscription was registered but the pump is already Stopped,
		// so the consumer is not launched. The subscription register
		// installed is left in place: Pump holds no handle to remove it.
		logger.Warn("events: stop raced start, tearing down unstarted pump")
		return nil
	}

	go p.consume(queue, done)
	return nil
}

// feed is the non-blocking enqueue the native callback invokes on the
// dispatcher's worker thread. On a full queue it increments the overflow
// counter and drops the key, never blocking the caller.
func (p *Pump) feed(queue chan string, key string) {
	select {
	case queue <- key:
		p.metrics.SetEventQueueDepth(len(queue))
	default:
		p.overflow.Add(1)
		p.metrics.RecordEventOverflow()
		logger.Warn("events: queue full, dropping key", "key", key)
	}
}

// Feed is the exported form of feed, for backends (or the Stub) that
// hold a reference to a running Pump directly rather than through the
// register callback Start passes to them.
func (p *Pump) Feed(key string) {
	p.mu.Lock()
	queue := p.queue
	p.mu.Unlock()
	if queue == nil {
		return
	}
	p.feed(queue, key)
}

// consume is the dedicated background goroutine: it blocks on the FIFO,
// reports accumulated overflow before each key, parses the key, and
// fans the result out to every subscriber under a panic guard.
func (p *Pump) consume(queue chan string, done chan struct{}) {
	logger.Info("events: consumer started")
	defer logger.Info("events: consumer stopped")

	for key := range queue {
		if n := p.overflow.Swap(0); n > 0 {
			p.dispatch(Item{Err: jverrors.EventQueueOverflow(int(n))})
		}
		event, err := ParseWatchEvent(key)
		if err != nil {
			p.dispatch(Item{Err: err})
			continue
		}
		p.metrics.RecordEventDelivered(event.Kind.String())
		p.dispatch(Item{Event: event})
	}
	close(done)
}

func (p *Pump) dispatch(item Item) {
	p.subMu.RLock()
	subs := append([]Subscriber(nil), p.subscribers...)
	p.subMu.RUnlock()

	for _, sub := range subs {
		p.callSubscriber(sub, item)
	}
}

func (p *Pump) callSubscriber(sub Subscriber, item Item) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("events: subscriber panicked, continuing", "panic", r)
		}
	}()
	sub(item)
}

// Stop atomically exchanges the state with Stopped. If the pump was
// Running it completes the FIFO (closing it so the consumer drains and
// exits); if it was Starting, Stop returns at once and Start, on seeing
// the Stopped state, does not launch the consumer. Neither Stop nor Start
// closes the native subscription.
func (p *Pump) Stop() {
	prev := pumpState(p.state.Swap(int32(stateStopped)))
	if prev != stateRunning {
		return
	}

	p.mu.Lock()
	queue, done := p.queue, p.done
	p.mu.Unlock()

	if queue != nil {
		close(queue)
	}
	if done != nil {
		<-done
	}
}

// Running reports whether the pump is in the Running state.
func (p *Pump) Running() bool {
	return pumpState(p.state.Load()) == stateRunning
}
