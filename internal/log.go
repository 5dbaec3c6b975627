package internal

import (
	"log"
	"os"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var levelNames = map[string]LogLevel{
	"ERROR": LogLevelError,
	"WARN":  LogLevelWarn,
	"INFO":  LogLevelInfo,
	"DEBUG": LogLevelDebug,
	"TRACE": LogLevelTrace,
}

// ParseLogLevel maps a level name to a LogLevel, case-insensitively.
func ParseLogLevel(name string) (LogLevel, bool) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]
	return level, ok
}

// Logger provides leveled logging with an optional component tag
type Logger struct {
	level     LogLevel
	component string
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	if parsed, ok := ParseLogLevel(os.Getenv("LOG_LEVEL")); ok {
		level = parsed
	}
	return &Logger{level: level}
}

// With returns a logger that tags every line with component, nested under
// the component of l when it has one
func (l *Logger) With(component string) *Logger {
	if l.component != "" {
		component = l.component + "/" + component
	}
	return &Logger{level: l.level, component: component}
}

func (l *Logger) logf(level LogLevel, tag, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	prefix := "[" + tag + "] "
	if l.component != "" {
		prefix += "[" + l.component + "] "
	}
	log.Printf(prefix+format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, "ERROR", format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, "WARN", format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogLevelInfo, "INFO", format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, "DEBUG", format, args...)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(LogLevelTrace, "TRACE", format, args...)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// DefaultLogger is the process-wide logger
var DefaultLogger = NewDefaultLogger()
