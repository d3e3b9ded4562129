package logger

import (
	"io"
	stdlog "log" // aliased to avoid clashing with zerolog fields

	"github.com/rs/zerolog"

	"github.com/forgebot/rangediff/internal/common/errorwrapper"
)

// Logger wraps the configured zerolog instance
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// New creates a zerolog logger from file-level configuration
func New(cfg FileLogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}

// LoggerBuilder provides a fluent interface for building loggers
type LoggerBuilder struct {
	config LoggerConfig
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{config: DefaultLoggerConfig()}
}

// WithConfig sets the logger configuration
func (lb *LoggerBuilder) WithConfig(cfg FileLogConfig) *LoggerBuilder {
	lb.config = convertConfig(cfg)
	return lb
}

// WithLevel overrides the log level
func (lb *LoggerBuilder) WithLevel(level zerolog.Level) *LoggerBuilder {
	lb.config.Level = level
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if err := lb.validateConfig(); err != nil {
		return nil, err
	}

	writers := lb.createWriters()
	if len(writers) == 0 {
		return nil, errorwrapper.NewError("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	zerologInstance := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(lb.config.Level)
	stdlog.SetOutput(zerologInstance)
	stdlog.SetFlags(0)

	return &Logger{
		zerolog: zerologInstance,
		config:  lb.config,
	}, nil
}

// validateConfig validates the logger configuration
func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return errorwrapper.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}

	if lb.config.MaxSizeMB <= 0 {
		return errorwrapper.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}

	return nil
}

// createWriters creates the writers enabled by the configuration
func (lb *LoggerBuilder) createWriters() []io.Writer {
	var writers []io.Writer

	if lb.config.EnableConsole {
		writers = append(writers, newConsoleWriter(lb.config.Format))
	}
	if lb.config.EnableFile {
		writers = append(writers, newFileWriter(lb.config))
	}

	return writers
}
