// Package logging is the package-level structured logger shared by the una
// engines and the CLI.
//
// The default handler is a compact console format written to stderr:
//
//	[LEVEL] HH:MM:SS message | key=value key=value
//
// SetJSONOutput switches to slog's JSON handler for machine consumption.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const runIDKey contextKey = "runID"

var (
	mu     sync.RWMutex
	out    io.Writer = os.Stderr
	level            = new(slog.LevelVar)
	logger *slog.Logger
)

func init() {
	level.Set(slog.LevelInfo)
	logger = slog.New(NewCompactHandler(out, &slog.HandlerOptions{Level: level}))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return logger
}

// Logger returns the current package logger.
func Logger() *slog.Logger { return current() }

// SetLevel changes the minimum level of the current handler.
func SetLevel(l slog.Level) { level.Set(l) }

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown names fall back to info and ok is false.
func ParseLevel(name string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, false
	}

	return l, true
}

// SetOutput redirects the current format to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	if _, isJSON := logger.Handler().(*slog.JSONHandler); isJSON {
		logger = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
		return
	}
	logger = slog.New(NewCompactHandler(out, &slog.HandlerOptions{Level: level}))
}

// SetJSONOutput switches between JSON and compact console output.
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		logger = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
		return
	}
	logger = slog.New(NewCompactHandler(out, &slog.HandlerOptions{Level: level}))
}

// NewRunID returns a fresh identifier for one batch run.
func NewRunID() string { return uuid.NewString() }

// WithRunID adds a run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID retrieves the run ID from context
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}

	return ""
}

func withRunID(ctx context.Context, args []any) []any {
	if id := GetRunID(ctx); id != "" {
		return append([]any{"runID", id}, args...)
	}

	return args
}

// Debug logs at DEBUG level (internal component behavior)
func Debug(msg string, args ...any) { current().Debug(msg, args...) }

// DebugContext logs at DEBUG level with context
func DebugContext(ctx context.Context, msg string, args ...any) {
	current().DebugContext(ctx, msg, withRunID(ctx, args)...)
}

// Info logs at INFO level (user-facing operations)
func Info(msg string, args ...any) { current().Info(msg, args...) }

// InfoContext logs at INFO level with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	current().InfoContext(ctx, msg, withRunID(ctx, args)...)
}

// Warn logs at WARN level. It is the default warning sink of the engines.
func Warn(msg string, args ...any) { current().Warn(msg, args...) }

// WarnContext logs at WARN level with context
func WarnContext(ctx context.Context, msg string, args ...any) {
	current().WarnContext(ctx, msg, withRunID(ctx, args)...)
}

// Error logs at ERROR level
func Error(msg string, args ...any) { current().Error(msg, args...) }

// ErrorContext logs at ERROR level with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	current().ErrorContext(ctx, msg, withRunID(ctx, args)...)
}
