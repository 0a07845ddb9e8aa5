package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var logContextKey = contextKey{}

// LogContext holds request-scoped fields threaded through a single
// orchestrated operation: a correlation ID assigned at submission to the
// Apartment Dispatcher, the operation name, and the session state the
// orchestrator observed when the operation started.
type LogContext struct {
	CorrelationID string
	Operation     string // "fetch_all", "stream", "open_realtime", ...
	SessionState  string
	Sid           string
	StartTime     time.Time
}

// WithContext returns a new context carrying lc.
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from ctx, or nil if absent.
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a LogContext for a freshly submitted operation.
func NewLogContext(correlationID, operation string) *LogContext {
	return &LogContext{
		CorrelationID: correlationID,
		Operation:     operation,
		StartTime:     time.Now(),
	}
}

// Clone returns a copy of lc.
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	clone := *lc
	return &clone
}

// WithSessionState returns a copy of lc with SessionState set.
func (lc *LogContext) WithSessionState(state string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.SessionState = state
	}
	return clone
}

// DurationMs returns the elapsed time since StartTime in milliseconds.
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}

// DebugCtx logs at debug level, auto-injecting the fields carried on ctx.
func DebugCtx(ctx context.Context, msg string, args ...any) {
	if LevelDebug < Level(currentLevel.Load()) {
		return
	}
	getLogger().Debug(msg, appendContextFields(ctx, args)...)
}

// InfoCtx logs at info level, auto-injecting the fields carried on ctx.
func InfoCtx(ctx context.Context, msg string, args ...any) {
	if LevelInfo < Level(currentLevel.Load()) {
		return
	}
	getLogger().Info(msg, appendContextFields(ctx, args)...)
}

// WarnCtx logs at warn level, auto-injecting the fields carried on ctx.
func WarnCtx(ctx context.Context, msg string, args ...any) {
	if LevelWarn < Level(currentLevel.Load()) {
		return
	}
	getLogger().Warn(msg, appendContextFields(ctx, args)...)
}

// ErrorCtx logs at error level, auto-injecting the fields carried on ctx.
func ErrorCtx(ctx context.Context, msg string, args ...any) {
	getLogger().Error(msg, appendContextFields(ctx, args)...)
}

func appendContextFields(ctx context.Context, args []any) []any {
	lc := FromContext(ctx)
	if lc == nil {
		return args
	}

	ctxArgs := make([]any, 0, 8+len(args))
	if lc.CorrelationID != "" {
		ctxArgs = append(ctxArgs, "correlation_id", lc.CorrelationID)
	}
	if lc.Operation != "" {
		ctxArgs = append(ctxArgs, "operation", lc.Operation)
	}
	if lc.SessionState != "" {
		ctxArgs = append(ctxArgs, "session_state", lc.SessionState)
	}
	if lc.Sid != "" {
		ctxArgs = append(ctxArgs, "sid", lc.Sid)
	}
	ctxArgs = append(ctxArgs, args...)
	return ctxArgs
}
