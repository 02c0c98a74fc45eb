package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lastEntry decodes the last JSON line written to buf
func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines[len(lines)-1], "no log output captured")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestInitialize_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "info", level: "info", want: zerolog.InfoLevel},
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "upper case", level: "WARN", want: zerolog.WarnLevel},
		{name: "error", level: "error", want: zerolog.ErrorLevel},
		{name: "invalid defaults to info", level: "loud", want: zerolog.InfoLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Initialize(Config{Level: tt.level, Format: "json", Writer: &buf}))
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestInitialize_ServiceFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Initialize(Config{
		Level:   "info",
		Format:  "json",
		Service: "avax-l1-explorer",
		Version: "1.0.0",
		Writer:  &buf,
	}))

	Logger.Info().Msg("started")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "avax-l1-explorer", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "started", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.NotEmpty(t, entry["time"])
	_, hasCaller := entry["caller"]
	assert.False(t, hasCaller)
}

func TestInitialize_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "explorer.log")
	require.NoError(t, Initialize(Config{Level: "info", Format: "json", OutputPath: path, MaxSizeMB: 1}))

	Logger.Info().Msg("to file")
	assert.FileExists(t, path)
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{name: "with request id", ctx: WithRequestID(context.Background(), "req-123"), want: "req-123"},
		{name: "without request id", ctx: context.Background()},
		{name: "nil context", ctx: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Writer: &buf}))

			l := FromContext(tt.ctx)
			l.Info().Msg("test message")

			entry := lastEntry(t, &buf)
			if tt.want != "" {
				assert.Equal(t, tt.want, entry["request_id"])
			} else {
				assert.NotContains(t, entry, "request_id")
			}
		})
	}
}

func TestGetRequestID(t *testing.T) {
	ctx := context.Background()
	tagged := WithRequestID(ctx, "req-456")

	assert.Equal(t, "req-456", GetRequestID(tagged))
	assert.Empty(t, GetRequestID(ctx))

	var missing context.Context
	assert.Empty(t, GetRequestID(missing))
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Initialize(Config{Level: "info", Format: "json", Writer: &buf}))

	l := Component("collector")
	l.Warn().Str("origin", "fallback").Msg("networks_refreshed")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "collector", entry["component"])
	assert.Equal(t, "fallback", entry["origin"])
	assert.Equal(t, "warn", entry["level"])
}
