package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Level orders log severities. Messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLevel accepts debug, info, warn/warning and error (case-insensitive).
func ParseLevel(value string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", value)
}

// Logger writes one key=value line per message.
type Logger struct {
	writer io.Writer
	level  Level
	now    func() time.Time
}

// New creates a logger writing to stderr at info level.
func New() *Logger {
	return NewWithWriter(os.Stderr, LevelInfo)
}

// NewWithWriter creates a logger with a custom writer and minimum level.
func NewWithWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		writer: w,
		level:  level,
		now:    time.Now,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(io.Discard, LevelError+1)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields...)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields...)
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields...)
}

func (l *Logger) log(level Level, msg string, fields ...Field) {
	if l == nil || level < l.level {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "TIME=%s LEVEL=%s MESSAGE=%q", l.now().UTC().Format(time.RFC3339), level, msg)
	for _, field := range fields {
		fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
	}
	_, _ = fmt.Fprintln(l.writer, b.String())
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new field (shorthand)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Action(value string) Field      { return F("ACTION", value) }
func Key(value string) Field         { return F("KEY", value) }
func Reservation(value string) Field { return F("RESERVATION", value) }
func Category(value string) Field    { return F("CATEGORY", value) }
func Hour(value string) Field        { return F("HOUR", value) }
func Count(value int) Field          { return F("COUNT", value) }
func Path(value string) Field        { return F("PATH", value) }
func Error(value error) Field        { return F("ERROR", value) }
