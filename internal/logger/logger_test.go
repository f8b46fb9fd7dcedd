package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf, Component: "grid"})
	require.NoError(t, err)

	log = log.With("theme", "pokemon", "pairs", 8)
	log.Info(context.Background(), "building grid")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "building grid", entry["message"])
	require.Equal(t, "pokemon", entry["theme"])
	require.EqualValues(t, 8, entry["pairs"])
	require.Equal(t, "grid", entry["component"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug(context.Background(), "this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	ctx := WithCorrelationID(context.Background(), "abc123")
	log.Error(ctx, "failed", "error", errors.New("boom"), "endpoint", "/memory/save")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "failed", entry["message"])
	require.Equal(t, "boom", entry["error"])
	require.Equal(t, "/memory/save", entry["endpoint"])
	require.Equal(t, "abc123", entry["correlation_id"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNilAndNoOpLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	require.NotPanics(t, func() {
		nilLogger.Info(context.Background(), "ignored")
		require.Nil(t, nilLogger.With("k", "v"))
		NoOp().With("k", "v").Warn(context.Background(), "ignored")
	})
}

func TestNewCorrelationIDIsUUID(t *testing.T) {
	t.Parallel()

	id := NewCorrelationID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())
	require.Empty(t, CorrelationID(context.Background()))
}
