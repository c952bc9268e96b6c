// Package logging provides structured logging using Go's slog package.
//
// Tool output (SFM text, reports, XML) goes to stdout, so log records are
// written to stderr unless SetOutput says otherwise.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger

	// output is where log records are written.
	output io.Writer = os.Stderr
)

func init() {
	InitLogger(LevelWarn, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
)

// ParseLevel maps a config value ("debug", "info", "warn", "error") to a
// Level. Unknown values map to LevelWarn.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

// ParseFormat maps "json" to FormatJSON and anything else to FormatText.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// SetOutput redirects subsequent loggers created by InitLogger.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// DictionaryLoaded logs a word table built for one language.
func DictionaryLoaded(lang string, words int, source string, args ...any) {
	allArgs := []any{
		"lang", lang,
		"words", words,
		"source", source,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("dictionary_loaded", allArgs...)
}

// CacheEvent logs dictionary cache hits, misses and refreshes.
func CacheEvent(event, lang string, args ...any) {
	allArgs := []any{
		"event", event,
		"lang", lang,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Debug("cache_event", allArgs...)
}

// ToolRun logs the start of a tool invocation.
func ToolRun(tool string, inputs []string, args ...any) {
	allArgs := []any{
		"tool", tool,
		"inputs", inputs,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("tool_run", allArgs...)
}

// ToolFailure logs a fatal tool error before the process exits.
func ToolFailure(tool string, err error, args ...any) {
	allArgs := []any{
		"tool", tool,
		"error", err.Error(),
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Error("tool_failure", allArgs...)
}
