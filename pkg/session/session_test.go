package session

import (
	"context"
	"testing"
	"time"

	"github.com/cariandrum22/Xanthos-sub000/pkg/client"
	"github.com/cariandrum22/Xanthos-sub000/pkg/dispatcher"
	"github.com/cariandrum22/Xanthos-sub000/pkg/jverrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *client.Stub) {
	t.Helper()
	disp := dispatcher.New(dispatcher.DefaultConfig())
	disp.Start()
	t.Cleanup(func() { disp.Stop(time.Second) })

	stub := client.NewStub()
	o := New(stub, disp, DefaultPolicy())
	return o, stub
}

func TestFetchAllAccumulatesNonEmptyPayloads(t *testing.T) {
	o, stub := newTestOrchestrator(t)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeRecord, Buffer: []byte("RA-one")}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeFileBoundary}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeRecord, Buffer: []byte("RA-two")}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeEndOfStream}, nil)

	payloads, err := o.FetchAll(context.Background(), "UNIT-TEST", Request{Spec: "RACE"})
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "RA-one", string(payloads[0].Buffer))
	assert.Equal(t, "RA-two", string(payloads[1].Buffer))
	assert.Equal(t, StateIdle, o.State())
}

func TestFetchAllDiscardsEmptyPayloads(t *testing.T) {
	o, stub := newTestOrchestrator(t)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeRecord, Buffer: nil}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeEndOfStream}, nil)

	payloads, err := o.FetchAll(context.Background(), "UNIT-TEST", Request{Spec: "RACE"})
	require.NoError(t, err)
	assert.Empty(t, payloads)
}

func TestFetchAllWithByteCountSumsBytes(t *testing.T) {
	o, stub := newTestOrchestrator(t)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeRecord, Buffer: []byte("abcd")}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeRecord, Buffer: []byte("xyz")}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeEndOfStream}, nil)

	payloads, total, err := o.FetchAllWithByteCount(context.Background(), "UNIT-TEST", Request{Spec: "RACE"})
	require.NoError(t, err)
	assert.Len(t, payloads, 2)
	assert.EqualValues(t, 7, total)
}

func TestConcurrentFetchAllSecondCallerGetsInvalidState(t *testing.T) {
	o, stub := newTestOrchestrator(t)
	// The first stream is started and holds the guard; a second FetchAll
	// issued while it is still open must be rejected immediately with
	// InvalidState rather than queued.
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeEndOfStream}, nil)

	s := o.Stream("UNIT-TEST", Request{Spec: "RACE"})
	require.NoError(t, s.start(context.Background()))
	defer s.finish(context.Background())

	_, err := o.FetchAll(context.Background(), "UNIT-TEST", Request{Spec: "RACE"})
	require.Error(t, err)
	assert.True(t, jverrors.IsInvalidState(err))
}

func TestFetchRangeStopsAtLimit(t *testing.T) {
	o, stub := newTestOrchestrator(t)
	for i := 0; i < 10; i++ {
		stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeRecord, Buffer: []byte{byte(i)}}, nil)
	}

	payloads, err := o.FetchRange(context.Background(), "UNIT-TEST", Request{Spec: "RACE"}, 3)
	require.NoError(t, err)
	assert.Len(t, payloads, 3)
	assert.Equal(t, StateIdle, o.State())
}

func TestStreamAsyncDeliversPayloadsUntilEndOfStream(t *testing.T) {
	o, stub := newTestOrchestrator(t)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeRecord, Buffer: []byte("one")}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeRecord, Buffer: []byte("two")}, nil)
	stub.Script(client.ReadOutcome{Kind: client.ReadOutcomeEndOfStream}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch := o.StreamAsync(ctx, "UNIT-TEST", Request{Spec: "RACE"}, time.Millisecond)
	var got []string
	for item := range ch {
		require.NoError(t, item.Err)
		got = append(got, string(item.Payload.Buffer))
	}
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestGetStatusPassesThrough(t *testing.T) {
	o, stub := newTestOrchestrator(t)
	stub.SetStatusCode(42)
	status, err := o.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, status)
}

func TestDiagnosticsReflectsState(t *testing.T) {
	o, _ := newTestOrchestrator(t)
	d := o.Diagnostics()
	assert.Equal(t, StateIdle, d.State)
	assert.False(t, d.Poisoned)
}
