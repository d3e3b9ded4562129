package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newConsoleWriter creates the writer for console output in the given format
func newConsoleWriter(format LogFormat) io.Writer {
	return formatWriter(os.Stderr, format, false)
}

// newFileWriter creates a rotated file writer for the configured path
func newFileWriter(cfg LoggerConfig) io.Writer {
	if dir := filepath.Dir(cfg.FilePath); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: cfg.MaxBackups,
	}

	// Console formatting in a file gets colors stripped
	return formatWriter(rotated, cfg.Format, true)
}

func formatWriter(out io.Writer, format LogFormat, noColor bool) io.Writer {
	switch format {
	case FormatJSON:
		return out
	case FormatText:
		return zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	default:
		return zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    noColor,
			TimeFormat: time.RFC3339,
		}
	}
}
