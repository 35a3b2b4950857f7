// Package logger wraps charmbracelet/log with a process-wide default
// logger. Pipeline stages log through this package so verbosity is
// controlled in one place.
package logger

import (
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	mu            sync.RWMutex
	defaultLogger = newLogger(os.Stderr, charmlog.InfoLevel)
)

func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

// ParseLevel maps a level name to a charm log level. Unknown names
// fall back to info.
func ParseLevel(name string) charmlog.Level {
	switch name {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Setup replaces the default logger with one at the given level.
// Logs go to stderr so piped artifact output on stdout stays clean.
func Setup(level string) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = newLogger(os.Stderr, ParseLevel(level))
}

// Get returns the default logger.
func Get() *charmlog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

func Debug(msg string, keyvals ...any) { Get().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { Get().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { Get().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { Get().Error(msg, keyvals...) }

// With returns a sub-logger carrying the given key/value context.
func With(keyvals ...any) *charmlog.Logger {
	return Get().With(keyvals...)
}
