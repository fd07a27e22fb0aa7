package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))
}

func TestZapLoggerWritesStructuredObjects(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", zapcore.AddSync(&buf))

	log.DebugObj("hidden", "k", 1)
	log.InfoObj("scenario finished", "outcome", map[string]any{"id": "auth-valid-key"})
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "scenario finished", entry["msg"])
	assert.Contains(t, entry, "ts")
	assert.Equal(t, map[string]any{"id": "auth-valid-key"}, entry["outcome"])
}

func TestEnsure(t *testing.T) {
	assert.IsType(t, NopLogger{}, Ensure(nil))
	var buf bytes.Buffer
	l := New("info", zapcore.AddSync(&buf))
	assert.Same(t, l, Ensure(l))
}
