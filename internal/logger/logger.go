package logger

import (
	"fmt"
	"strings"
)

type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warning(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// ParseLevel maps a configured level name to a LogLevel
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) Debug(string, map[string]interface{})        {}
func (Nop) Info(string, map[string]interface{})         {}
func (Nop) Warning(string, map[string]interface{})      {}
func (Nop) Error(string, error, map[string]interface{}) {}
