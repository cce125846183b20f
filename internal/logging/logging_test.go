package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobeam/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := logging.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logging.New("warn", "json", &buf)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", "code", "shear-closure")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "shear-closure", rec["code"])
}

func TestNewText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logging.New("", "", &buf)
	require.NoError(t, err)
	log.Info("hello", "beam", "B1")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "beam=B1")

	_, err = logging.New("info", "xml", &buf)
	assert.Error(t, err)
	_, err = logging.New("chatty", "text", &buf)
	assert.Error(t, err)
}
