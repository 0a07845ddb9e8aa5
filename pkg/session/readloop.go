package session

import (
	"context"
	"time"

	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
	"github.com/cariandrum22/Xanthos-sub000/pkg/client"
	"github.com/cariandrum22/Xanthos-sub000/pkg/jverrors"
)

// readWithRecovery wraps one backend.Read/Gets call with the bounded
// retry-then-skip policy spec.md §4.6's read loop describes: a
// recoverable-by-skip communication error is retried up to
// policy.RetryCount times with linear backoff, then resolved by calling
// Skip; if Skip itself fails the orchestrator returns an error rather
// than silently dropping data.
func (o *Orchestrator) readWithRecovery(ctx context.Context, readFn func(ctx context.Context) (client.ReadOutcome, error)) (client.ReadOutcome, error) {
	var lastErr error
	for attempt := 0; attempt <= o.policy.RetryCount; attempt++ {
		v, err := o.submit(ctx, func(ctx context.Context) (any, error) {
			return readFn(ctx)
		})
		if err == nil {
			return v.(client.ReadOutcome), nil
		}

		lastErr = err
		var native *jverrors.NativeFailure
		if le, ok := err.(*jverrors.LibraryError); ok && le.Kind == jverrors.KindNative {
			native = le.Native
		}
		if native == nil || native.Kind != jverrors.KindCommunication || !jverrors.RecoverableBySkip(native.Code) {
			return client.ReadOutcome{}, wrapNative(err)
		}

		if attempt < o.policy.RetryCount {
			backoff := o.policy.RetryBackoffBase * time.Duration(attempt+1)
			o.metrics.RecordReadRetry()
			logger.Debug("session: recoverable read error, retrying", "attempt", attempt, "backoff", backoff.String())
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return client.ReadOutcome{}, ctx.Err()
			}
		}
	}

	logger.Warn("session: recoverable read error exhausted retries, skipping", "error", lastErr)
	o.metrics.RecordReadSkip()
	if _, err := o.submit(ctx, func(ctx context.Context) (any, error) {
		return nil, o.backend.Skip(ctx)
	}); err != nil {
		return client.ReadOutcome{}, jverrors.Native(jverrors.UnexpectedFailure("skip after exhausted retries also failed: " + err.Error()))
	}
	return client.ReadOutcome{Kind: client.ReadOutcomeFileBoundary}, nil
}
