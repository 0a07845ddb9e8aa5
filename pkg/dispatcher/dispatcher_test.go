package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitBeforeStartReturnsErrNotStarted(t *testing.T) {
	d := New(DefaultConfig())
	_, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestSubmitRunsJobAndReturnsValue(t *testing.T) {
	d := New(DefaultConfig())
	d.Start()
	defer d.Stop(time.Second)

	v, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSubmitPropagatesJobError(t *testing.T) {
	d := New(DefaultConfig())
	d.Start()
	defer d.Stop(time.Second)

	wantErr := errors.New("native failure")
	_, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestSubmitSerialisesJobs(t *testing.T) {
	d := New(DefaultConfig())
	d.Start()
	defer d.Stop(time.Second)

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		_, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) {
			order = append(order, i)
			return nil, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSubmitTimeoutPoisonsDispatcher(t *testing.T) {
	d := New(Config{QueueSize: 4, CallTimeout: 20 * time.Millisecond})
	d.Start()
	defer d.Stop(100 * time.Millisecond)

	blockRelease := make(chan struct{})
	blockStarted := make(chan struct{})
	go func() {
		_, _ = d.Submit(context.Background(), func(ctx context.Context) (any, error) {
			close(blockStarted)
			<-blockRelease
			return nil, nil
		})
	}()
	<-blockStarted

	_, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrPoisoned)
	assert.True(t, d.Poisoned())
	close(blockRelease)
}

func TestSubmitAfterStopReturnsErrStopped(t *testing.T) {
	d := New(DefaultConfig())
	d.Start()
	d.Stop(time.Second)

	_, err := d.Submit(context.Background(), func(ctx context.Context) (any, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrStopped)
}

func TestSubmitRespectsCallerContextCancellation(t *testing.T) {
	d := New(DefaultConfig())
	d.Start()
	defer d.Stop(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Submit(ctx, func(ctx context.Context) (any, error) { return nil, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
