package logger

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/forgebot/rangediff/internal/common/errorwrapper"
)

// ParseLevel parses a string log level to zerolog.Level
func ParseLevel(levelStr string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.WrapError(err, "invalid log level")
	}
	return level, nil
}

// ParseFormat parses a string format to LogFormat, defaulting to console
func ParseFormat(formatStr string) LogFormat {
	switch strings.ToLower(formatStr) {
	case "json":
		return FormatJSON
	case "console":
		return FormatConsole
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}

// convertConfig resolves a file-level config into a LoggerConfig
func convertConfig(cfg FileLogConfig) LoggerConfig {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return LoggerConfig{
		Level:         level,
		Format:        ParseFormat(cfg.LogFormat),
		EnableConsole: true,
		EnableFile:    cfg.EnableFile,
		FilePath:      cfg.LogFile,
		MaxSizeMB:     cfg.MaxLogSizeMB,
		MaxBackups:    cfg.MaxLogBackups,
	}
}
