package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitDisabledInstallsNoopTracer(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.False(t, IsEnabled())
}

func TestInitEnabledRecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := Init(context.Background(), Config{Enabled: true, ServiceName: "jvlink-test", Exporter: exporter})
	require.NoError(t, err)
	assert.True(t, IsEnabled())

	_, span := StartSpan(context.Background(), "fetch_all", SessionAttrs("sid-1", "RACE", "")...)
	span.End()

	require.NoError(t, shutdown(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "fetch_all", spans[0].Name)
}

func TestWrapRecordsErrorOnSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := Init(context.Background(), Config{Enabled: true, ServiceName: "jvlink-test", Exporter: exporter})
	require.NoError(t, err)
	defer shutdown(context.Background())

	boom := errors.New("boom")
	err = Wrap(context.Background(), "stream", nil, func(ctx context.Context) error {
		return boom
	})
	assert.Equal(t, boom, err)
}
