// Package logging provides structured logging for ccprops2compdb.
//
// Logs always go to stderr so that `--output -` can stream the database on
// stdout. The level and handler format come from the environment and can be
// overridden by the --verbose and --quiet flags:
//   - CCPROPS2COMPDB_LOG_LEVEL: DEBUG, INFO, WARN, ERROR (default: WARN)
//   - CCPROPS2COMPDB_LOG_FORMAT: text, json (default: text)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

const (
	LogLevelEnvVar  = "CCPROPS2COMPDB_LOG_LEVEL"
	LogFormatEnvVar = "CCPROPS2COMPDB_LOG_FORMAT"
)

const (
	DefaultLevel  = slog.LevelWarn
	DefaultFormat = "text"
)

// Logger is the logging surface used across the repo.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a Logger that adds the key-value pairs to every record.
	With(args ...any) Logger
}

type logger struct {
	slog *slog.Logger
}

func (l *logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

func (l *logger) With(args ...any) Logger {
	return &logger{slog: l.slog.With(args...)}
}

var (
	defaultLogger Logger
	once          sync.Once
)

// Default returns the process-wide logger, built from the environment on
// first use.
func Default() Logger {
	once.Do(func() {
		if defaultLogger == nil {
			defaultLogger = NewFromEnv()
		}
	})
	return defaultLogger
}

// SetDefault replaces the process-wide logger. Call it before any goroutine
// uses Default.
func SetDefault(l Logger) {
	once.Do(func() {})
	defaultLogger = l
}

// NewFromEnv creates a stderr Logger configured from the environment.
func NewFromEnv() Logger {
	return New(os.Stderr, ParseLevel(os.Getenv(LogLevelEnvVar)), formatFromEnv())
}

// NewForCLI creates a stderr Logger for a command-line run. verbose forces
// DEBUG and quiet forces ERROR; with neither, the environment decides.
func NewForCLI(verbose, quiet bool) Logger {
	level := ParseLevel(os.Getenv(LogLevelEnvVar))
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return New(os.Stderr, level, formatFromEnv())
}

func formatFromEnv() string {
	if format := os.Getenv(LogFormatEnvVar); format != "" {
		return format
	}
	return DefaultFormat
}

// New creates a Logger writing to w. format is "text" or "json"; anything
// else falls back to text.
func New(w io.Writer, level slog.Level, format string) Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &logger{slog: slog.New(handler)}
}

// ParseLevel parses DEBUG, INFO, WARN (or WARNING) and ERROR, ignoring case
// and surrounding space. Unknown values give DefaultLevel.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return DefaultLevel
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) Logger { return n }

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}
