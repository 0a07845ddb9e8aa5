// Package telemetry wraps OpenTelemetry tracing around Session
// Orchestrator operations (SPEC_FULL.md §3b): the orchestrator opens a
// span for fetch_all, fetch_range and fetch_typed_records; other
// operations and individual dispatcher submissions are not traced —
// mirroring the teacher's pervasive
// internal/telemetry instrumentation of its protocol handlers, adapted
// here to accept any trace.SpanExporter rather than hard-wiring an OTLP
// gRPC endpoint (this library has no network service of its own to
// export from by default; callers wire in whatever exporter their
// environment needs).
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Common attribute keys for orchestrator operations.
const (
	AttrSessionID   = "jvlink.session_id"
	AttrSpec        = "jvlink.spec"
	AttrFromKey     = "jvlink.from_key"
	AttrState       = "jvlink.state"
	AttrRecordKind  = "jvlink.record_kind"
	AttrByteCount   = "jvlink.byte_count"
	AttrPayloadSize = "jvlink.payload_size"
)

// Config controls whether tracing is active and how spans are labelled.
type Config struct {
	// Enabled indicates whether tracing is active. When false, or when
	// Exporter is nil, Init installs a no-op tracer and Shutdown is a
	// no-op.
	Enabled bool

	// ServiceName is reported as the tracer's instrumentation name.
	ServiceName string

	// Exporter receives completed spans when Enabled is true. Callers
	// supply whatever exporter fits their environment (stdout, OTLP,
	// in-memory for tests); this package does not construct one itself.
	Exporter sdktrace.SpanExporter
}

var (
	tracer         trace.Tracer
	tracerOnce     sync.Once
	tracerProvider *sdktrace.TracerProvider
	enabled        bool
)

// Init installs the tracer provider described by cfg and returns a
// shutdown function that flushes and closes it. Safe to call once at
// process startup.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled || cfg.Exporter == nil {
		enabled = false
		tracer = noop.NewTracerProvider().Tracer("jvlink")
		return func(context.Context) error { return nil }, nil
	}

	enabled = true
	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(cfg.Exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tracerProvider)

	name := cfg.ServiceName
	if name == "" {
		name = "jvlink"
	}
	tracer = tracerProvider.Tracer(name)

	return func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tracerProvider.Shutdown(shutdownCtx)
	}, nil
}

// Tracer returns the installed tracer, or a no-op tracer if Init has
// not been called.
func Tracer() trace.Tracer {
	tracerOnce.Do(func() {
		if tracer == nil {
			tracer = noop.NewTracerProvider().Tracer("jvlink")
		}
	})
	return tracer
}

// IsEnabled reports whether a real (non-no-op) tracer is installed.
func IsEnabled() bool {
	return enabled
}

// StartSpan starts a child span named name under ctx's current span.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndWithError ends span, recording err and marking the span's status
// as an error if err is non-nil.
func EndWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Wrap runs fn inside a child span named name, recording its error (if
// any) on the span before returning it.
func Wrap(ctx context.Context, name string, attrs []attribute.KeyValue, fn func(ctx context.Context) error) error {
	ctx, span := StartSpan(ctx, name, attrs...)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// WrapValue is Wrap for functions that also return a value.
func WrapValue[T any](ctx context.Context, name string, attrs []attribute.KeyValue, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, span := StartSpan(ctx, name, attrs...)
	defer span.End()

	v, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return v, err
}

// SessionAttrs builds the common session/spec attribute set attached to
// every orchestrator span.
func SessionAttrs(sid, spec, fromKey string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrSessionID, sid),
		attribute.String(AttrSpec, spec),
		attribute.String(AttrFromKey, fromKey),
	}
}
