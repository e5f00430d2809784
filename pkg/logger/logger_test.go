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

func TestLogger_WritesFieldsAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "nursery", func(context.Context) string { return "abc123" })

	log.Info(context.Background(), "plant added", "name", "Rose", "price", 60.0)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "plant added", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "nursery", entry["service"])
	assert.Equal(t, "abc123", entry["trace_id"])
	assert.Equal(t, "Rose", entry["name"])
	assert.Equal(t, 60.0, entry["price"])
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "nursery", nil)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
	assert.NotContains(t, lines[0], "trace_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG", LevelInfo))
	assert.Equal(t, LevelError, ParseLevel(" error ", LevelInfo))
	assert.Equal(t, LevelInfo, ParseLevel("verbose", LevelInfo))
	assert.Equal(t, LevelWarn, ParseLevel("", LevelWarn))
}
