package logger

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected zerolog.Level
		wantErr  bool
	}{
		{name: "debug", input: "debug", expected: zerolog.DebugLevel},
		{name: "mixed case", input: "WARN", expected: zerolog.WarnLevel},
		{name: "invalid falls back to info", input: "loud", expected: zerolog.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatConsole, ParseFormat("CONSOLE"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatConsole, ParseFormat("yaml"))
}

func TestLoggerBuilder_Build(t *testing.T) {
	cfg := NewDefaultFileLogConfig()
	cfg.LogLevel = "debug"

	l, err := NewLoggerBuilder().WithConfig(cfg).Build()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, l.GetZerolog().GetLevel())
}

func TestLoggerBuilder_WithLevelOverride(t *testing.T) {
	cfg := NewDefaultFileLogConfig()
	cfg.LogLevel = "info"

	l, err := NewLoggerBuilder().WithConfig(cfg).WithLevel(zerolog.ErrorLevel).Build()
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, l.GetZerolog().GetLevel())
}

func TestLoggerBuilder_FileLoggingRequiresPath(t *testing.T) {
	cfg := NewDefaultFileLogConfig()
	cfg.EnableFile = true
	cfg.LogFile = ""

	_, err := NewLoggerBuilder().WithConfig(cfg).Build()
	assert.Error(t, err)
}

func TestNew_FileLogging(t *testing.T) {
	cfg := NewDefaultFileLogConfig()
	cfg.EnableFile = true
	cfg.LogFile = filepath.Join(t.TempDir(), "rangediff.log")

	log, err := New(cfg)
	require.NoError(t, err)
	log.Info().Msg("hello")
}
