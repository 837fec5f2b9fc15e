package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/morsel/internal/logger"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in     string
		want   slog.Level
		wantOK bool
	}

	tests := []testCase{
		{in: "debug", want: slog.LevelDebug, wantOK: true},
		{in: "INFO", want: slog.LevelInfo, wantOK: true},
		{in: "", want: slog.LevelInfo, wantOK: true},
		{in: "warn", want: slog.LevelWarn, wantOK: true},
		{in: "error", want: slog.LevelError, wantOK: true},
		{in: "loud", want: slog.LevelInfo, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestInit_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := logger.Init(&buf, "info", logger.FormatJSON)

	l.Debug("hidden")
	slog.Info("dataset ingested", "records", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dataset ingested", entry["msg"])
	assert.Equal(t, float64(3), entry["records"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestInit_TextWarnsOnBadLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger.Init(&buf, "loud", logger.FormatText)

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "configured=loud")
}
