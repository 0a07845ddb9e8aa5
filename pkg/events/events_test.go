package events

import (
	"testing"
	"time"

	"github.com/cariandrum22/Xanthos-sub000/pkg/jverrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWatchEventKnownKinds(t *testing.T) {
	e, err := ParseWatchEvent("0B1220240101010106")
	require.NoError(t, err)
	assert.Equal(t, KindPayoffConfirmed, e.Kind)
	assert.Equal(t, "0B12", e.Spec)
	assert.Equal(t, "20240101010106", e.Suffix)
}

func TestParseWatchEventUnknownKindIsUnknownNotError(t *testing.T) {
	e, err := ParseWatchEvent("ZZZZsomething")
	require.NoError(t, err)
	assert.Equal(t, KindUnknown, e.Kind)
}

func TestParseWatchEventTooShortErrors(t *testing.T) {
	_, err := ParseWatchEvent("0B")
	assert.Error(t, err)
}

func TestPumpDeliversEventsInOrder(t *testing.T) {
	p := New(10)
	var got []Item
	done := make(chan struct{})
	count := 0
	p.Subscribe(func(item Item) {
		got = append(got, item)
		count++
		if count == 3 {
			close(done)
		}
	})

	err := p.Start(func(feed func(string)) error {
		go func() {
			feed("0B1120240101010106")
			feed("0B1220240101010106")
			feed("0B1620240101010106")
		}()
		return nil
	})
	require.NoError(t, err)
	assert.True(t, p.Running())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events")
	}

	require.Len(t, got, 3)
	assert.Equal(t, KindHorseWeight, got[0].Event.Kind)
	assert.Equal(t, KindPayoffConfirmed, got[1].Event.Kind)
	assert.Equal(t, KindOddsUpdate, got[2].Event.Kind)

	p.Stop()
	assert.False(t, p.Running())
}

func TestPumpStartIsIdempotent(t *testing.T) {
	p := New(10)
	registerCalls := 0
	start := func() error {
		return p.Start(func(feed func(string)) error {
			registerCalls++
			return nil
		})
	}
	require.NoError(t, start())
	require.NoError(t, start())
	assert.Equal(t, 1, registerCalls)
	p.Stop()
}

func TestPumpOverflowEmitsErrorItem(t *testing.T) {
	p := New(1)
	items := make(chan Item, 10)
	p.Subscribe(func(item Item) { items <- item })

	require.NoError(t, p.Start(func(feed func(string)) error { return nil }))

	// Fill the capacity-1 queue, then drop at least one more before the
	// consumer has a chance to drain it.
	p.Feed("0B1120240101010106")
	p.Feed("0B1120240101010107")
	p.Feed("0B1120240101010108")

	var sawOverflow bool
	for i := 0; i < 3; i++ {
		select {
		case item := <-items:
			if item.Err != nil {
				var le *jverrors.LibraryError
				if ok := isLibraryError(item.Err, &le); ok && le.Kind == jverrors.KindEventQueueOverflow {
					sawOverflow = true
				}
			}
		case <-time.After(2 * time.Second):
		}
	}
	assert.True(t, sawOverflow)
	p.Stop()
}

func isLibraryError(err error, out **jverrors.LibraryError) bool {
	le, ok := err.(*jverrors.LibraryError)
	if ok {
		*out = le
	}
	return ok
}
