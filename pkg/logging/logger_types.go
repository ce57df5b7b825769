package logging

import (
	"io"
	"strings"
	"sync"
	"time"
)

// Level orders log severities; entries below a logger's level are dropped.
type Level int

const (
	// DebugLevel covers per-node detail such as each visited neighbourhood
	DebugLevel Level = iota
	InfoLevel
	// WarnLevel flags recoverable problems such as an unwritable metrics file
	WarnLevel
	// ErrorLevel is used when a run aborts
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < DebugLevel || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel converts a string to a Level. Unknown names report ok=false and
// fall back to InfoLevel.
func ParseLevel(s string) (level Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, true
	case "info", "":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	default:
		return InfoLevel, false
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value any
}

// Logger is implemented by JSONLogger and NopLogger. Packages accept it so
// tests can run silently.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With creates a child logger with the given fields pre-set
	With(fields ...Field) Logger
}

// JSONLogger writes one JSON object per line.
type JSONLogger struct {
	out    *syncWriter
	level  Level
	fields []Field
	now    func() time.Time
}

// syncWriter serialises writes from a logger and all of its children.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NopLogger discards everything. Pipelines built without a logger use it.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (n NopLogger) With(...Field) Logger { return n }

func NewNopLogger() Logger {
	return NopLogger{}
}

// TimedOperation measures the duration of a pipeline stage
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}
