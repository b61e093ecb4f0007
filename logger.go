package clusterkit

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clusterkit-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithMode adds a mode field to the logger.
func (l *Logger) WithMode(mode Mode) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", mode.String()),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithRunID tags all records with a run id.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogSeed logs a center initialization.
func (l *Logger) LogSeed(ctx context.Context, k, points int, plusPlus bool) {
	l.DebugContext(ctx, "centers initialized",
		"k", k,
		"points", points,
		"plus_plus", plusPlus,
	)
}

// LogUpdate logs one clustering step.
func (l *Logger) LogUpdate(ctx context.Context, mode Mode, first bool, stats UpdateStats) {
	if stats.Fallbacks > 0 {
		l.WarnContext(ctx, "degenerate posterior, fell back to round-robin",
			"mode", mode.String(),
			"points", stats.Fallbacks,
		)
	}
	l.DebugContext(ctx, "update completed",
		"mode", mode.String(),
		"first", first,
		"sweeps", stats.Sweeps,
		"changed", stats.Changed,
		"separated", stats.Separated,
	)
}

// LogRun logs the end of a Run.
func (l *Logger) LogRun(ctx context.Context, res RunResult, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run aborted",
			"steps", res.Steps,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"steps", res.Steps,
		"converged", res.Converged,
		"shift", res.Shift,
		"sse", res.SSE,
		"duration", res.Duration,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, size int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "snapshot completed",
		"op", op,
		"name", name,
		"bytes", size,
		"duration", duration,
	)
}
