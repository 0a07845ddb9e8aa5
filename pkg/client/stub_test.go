package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubInitRecordsCall(t *testing.T) {
	s := NewStub()
	require.NoError(t, s.Init(context.Background(), "UNIT-TEST"))
	calls := s.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Init", calls[0].Method)
	assert.Equal(t, []any{"UNIT-TEST"}, calls[0].Args)
}

func TestStubReadReplaysScriptInOrder(t *testing.T) {
	s := NewStub()
	s.Script(ReadOutcome{Kind: ReadOutcomeRecord, Buffer: []byte("RA...")}, nil)
	s.Script(ReadOutcome{Kind: ReadOutcomeFileBoundary}, nil)
	s.Script(ReadOutcome{Kind: ReadOutcomeEndOfStream}, nil)

	ctx := context.Background()
	o1, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReadOutcomeRecord, o1.Kind)

	o2, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReadOutcomeFileBoundary, o2.Kind)

	o3, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReadOutcomeEndOfStream, o3.Kind)
}

func TestStubReadPastScriptEndIsEndOfStream(t *testing.T) {
	s := NewStub()
	o, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReadOutcomeEndOfStream, o.Kind)
}

func TestStubSkipAdvancesCursor(t *testing.T) {
	s := NewStub()
	s.Script(ReadOutcome{Kind: ReadOutcomeRecord, Buffer: []byte("A")}, nil)
	s.Script(ReadOutcome{Kind: ReadOutcomeRecord, Buffer: []byte("B")}, nil)

	ctx := context.Background()
	require.NoError(t, s.Skip(ctx))
	o, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("B"), o.Buffer)
}

func TestStubCancelExhaustsScript(t *testing.T) {
	s := NewStub()
	s.Script(ReadOutcome{Kind: ReadOutcomeRecord, Buffer: []byte("A")}, nil)
	ctx := context.Background()
	require.NoError(t, s.Cancel(ctx))
	o, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReadOutcomeEndOfStream, o.Kind)
}

func TestStubWatchEventFeedsCallback(t *testing.T) {
	s := NewStub()
	var got []string
	require.NoError(t, s.WatchEvent(context.Background(), func(key string) {
		got = append(got, key)
	}))
	s.Feed("0B1120240101010106")
	s.Feed("0B1220240101010106")
	assert.Equal(t, []string{"0B1120240101010106", "0B1220240101010106"}, got)

	require.NoError(t, s.WatchEventClose(context.Background()))
	s.Feed("0B16after-close")
	assert.Len(t, got, 2)
}

func TestStubPropertiesRoundTrip(t *testing.T) {
	s := NewStub()
	ctx := context.Background()
	require.NoError(t, s.SetSaveFlag(ctx, true))
	require.NoError(t, s.SetSavePath(ctx, "/tmp/jv"))
	require.NoError(t, s.SetServiceKey(ctx, "ABCDE12345FGHJK67"))

	props, err := s.GetProperties(ctx)
	require.NoError(t, err)
	assert.True(t, props.SaveFlag)
	assert.Equal(t, "/tmp/jv", props.SavePath)
	assert.Equal(t, "ABCDE12345FGHJK67", props.ServiceKey)
}

func TestStubImplementsContract(t *testing.T) {
	var _ Contract = NewStub()
}
