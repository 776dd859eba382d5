package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level LogLevel) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(toZerologLevel(level)).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func NewConsoleLogger(level LogLevel) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return NewZerolog(consoleWriter, level)
}

// NewFileLogger writes JSON lines to writer
func NewFileLogger(level LogLevel, writer io.Writer) *ZerologAdapter {
	return NewZerolog(writer, level)
}

// Open returns a console logger that also appends JSON lines to path when
// path is set. Close the returned closer on exit.
func Open(level LogLevel, path string) (*ZerologAdapter, io.Closer, error) {
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	if path == "" {
		return NewZerolog(console, level), io.NopCloser(nil), nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return NewZerolog(zerolog.MultiLevelWriter(console, file), level), file, nil
}

// WithComponent returns a logger that tags every event with component
func (z *ZerologAdapter) WithComponent(component string) *ZerologAdapter {
	return &ZerologAdapter{logger: z.logger.With().Str("component", component).Logger()}
}

func (z *ZerologAdapter) Info(message string, fields map[string]interface{}) {
	z.logger.Info().Fields(fields).Msg(message)
}

func (z *ZerologAdapter) Error(message string, err error, fields map[string]interface{}) {
	z.logger.Error().Err(err).Fields(fields).Msg(message)
}

func (z *ZerologAdapter) Warning(message string, fields map[string]interface{}) {
	z.logger.Warn().Fields(fields).Msg(message)
}

func (z *ZerologAdapter) Debug(message string, fields map[string]interface{}) {
	z.logger.Debug().Fields(fields).Msg(message)
}

func toZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
