package downloadstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndLookupRoundTrips(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := Entry{Filename: "RACE20260101.dat", ServiceKey: "sk-1", ByteCount: 4096, DownloadedAt: time.Unix(1700000000, 0)}
	require.NoError(t, s.Record(ctx, entry))

	got, found, err := s.Lookup(ctx, "RACE20260101.dat")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, entry.Filename, got.Filename)
	require.Equal(t, entry.ByteCount, got.ByteCount)
}

func TestLookupMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, found, err := s.Lookup(context.Background(), "missing.dat")
	require.NoError(t, err)
	require.False(t, found)
}

func TestFilterExcludesAlreadySeenFilenames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, Entry{Filename: "a.dat"}))

	fresh, err := s.Filter(ctx, []string{"a.dat", "b.dat", "c.dat"})
	require.NoError(t, err)
	require.Equal(t, []string{"b.dat", "c.dat"}, fresh)
}

func TestCountReflectsRecordedEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, Entry{Filename: "a.dat"}))
	require.NoError(t, s.Record(ctx, Entry{Filename: "b.dat"}))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRecordOverwritesExistingEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, Entry{Filename: "a.dat", ByteCount: 10}))
	require.NoError(t, s.Record(ctx, Entry{Filename: "a.dat", ByteCount: 20}))

	got, found, err := s.Lookup(ctx, "a.dat")
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 20, got.ByteCount)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
