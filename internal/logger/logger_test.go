package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Debug("should not appear")
	Info("should not appear either")
	Warn("this should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "this should appear")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "json", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Info("opened session", "sid", "TEST01", "file_count", 3)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "opened session", decoded["msg"])
	assert.Equal(t, "TEST01", decoded["sid"])
}

func TestContextFieldsInjected(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	lc := NewLogContext("corr-123", "fetch_all").WithSessionState("Draining")
	ctx := WithContext(context.Background(), lc)

	InfoCtx(ctx, "reading payload")

	out := buf.String()
	assert.True(t, strings.Contains(out, "correlation_id=corr-123"))
	assert.True(t, strings.Contains(out, "operation=fetch_all"))
	assert.True(t, strings.Contains(out, "session_state=Draining"))
}

func TestFromContextNil(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	assert.Nil(t, FromContext(nil))
}

func TestLogContextDurationMs(t *testing.T) {
	var lc *LogContext
	assert.Equal(t, float64(0), lc.DurationMs())

	lc = NewLogContext("c", "op")
	assert.GreaterOrEqual(t, lc.DurationMs(), float64(0))
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	SetLevel("INFO")
	before := Level(currentLevel.Load())
	SetLevel("NOT_A_LEVEL")
	assert.Equal(t, before, Level(currentLevel.Load()))
}

func TestSetFormatIgnoresInvalid(t *testing.T) {
	SetFormat("text")
	SetFormat("xml")
	format, _ := currentFormat.Load().(string)
	assert.Equal(t, "text", format)
}
