package golayout

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with golayout-specific context.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPolicy adds a policy field to the logger.
func (l *Logger) WithPolicy(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("policy", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs the construction of a map.
func (l *Logger) LogBuild(ctx context.Context, policy string, count, duplicates int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"policy", policy,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "build completed",
			"policy", policy,
			"count", count,
			"duplicates", duplicates,
			"elapsed", elapsed,
		)
	}
}

// LogBatch logs a batched lookup.
func (l *Logger) LogBatch(ctx context.Context, policy string, needles, hits, workers int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch lookup failed",
			"policy", policy,
			"needles", needles,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch lookup completed",
			"policy", policy,
			"needles", needles,
			"hits", hits,
			"workers", workers,
		)
	}
}

// LogRelease logs the release of allocator-owned storage.
func (l *Logger) LogRelease(ctx context.Context, policy string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "release failed",
			"policy", policy,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "storage released",
			"policy", policy,
			"count", count,
		)
	}
}
