package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level LogLevel
		name  string
		slog  slog.Level
	}{
		{LevelDebug, "DEBUG", slog.LevelDebug},
		{LevelInfo, "INFO", slog.LevelInfo},
		{LevelWarn, "WARN", slog.LevelWarn},
		{LevelError, "ERROR", slog.LevelError},
		{LogLevel(42), "UNKNOWN", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.level.String())
		assert.Equal(t, tt.slog, tt.level.SlogLevel(), tt.name)
	}
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"Error":   LevelError,
	} {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorContains(t, err, `unknown log level "verbose"`)
}

func TestInitForCLI_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Debug("Detection", "probing %s", "fish")
	Info("Detection", "detected %d of %d tools", 3, 19)
	Warn("Catalog", "ignoring custom template %s", "broken.yaml")

	out := buf.String()
	assert.NotContains(t, out, "probing fish")
	assert.NotContains(t, out, "detected 3 of 19 tools")
	assert.Contains(t, out, "ignoring custom template broken.yaml")
	assert.Contains(t, out, "subsystem=Catalog")
}

func TestInit_Reconfigure(t *testing.T) {
	var first, second bytes.Buffer
	InitForCLI(LevelError, &first)
	Info("Storage", "saved %s", "alpha")
	assert.Empty(t, first.String())

	InitForCLI(LevelDebug, &second)
	Debug("Storage", "saved %s", "beta")
	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "saved beta")
}

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	Error("Installer", errors.New("exit status 1"), "failed to install %s", "fish")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record), buf.String())
	assert.Equal(t, "failed to install fish", record["msg"])
	assert.Equal(t, "Installer", record["subsystem"])
	assert.Equal(t, "exit status 1", record["error"])
	assert.Equal(t, "ERROR", record["level"])
}

func TestMessageWithoutArgsIsNotFormatted(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	Info("Watcher", "100% of templates reloaded")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "100% of templates reloaded", record["msg"])
}
