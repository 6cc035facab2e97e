package xmatch

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with xmatch-specific helpers.
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
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithOperation adds an operation field to the logger.
func (l *Logger) WithOperation(op Operation) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", string(op)),
	}
}

// LogMatch logs a crossmatch operation.
func (l *Logger) LogMatch(ctx context.Context, op Operation, queryLen, referenceLen, matches int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "match failed",
			"op", string(op),
			"query", queryLen,
			"reference", referenceLen,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "match completed",
			"op", string(op),
			"query", queryLen,
			"reference", referenceLen,
			"matches", matches,
		)
	}
}

// LogNumerify logs a numerify operation.
func (l *Logger) LogNumerify(ctx context.Context, values, newCodes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "numerify failed",
			"values", values,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "numerify completed",
			"values", values,
			"new_codes", newCodes,
		)
	}
}

// LogBatch logs a batch match operation.
func (l *Logger) LogBatch(ctx context.Context, queries, referenceLen int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch match aborted",
			"queries", queries,
			"reference", referenceLen,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch match completed",
			"queries", queries,
			"reference", referenceLen,
		)
	}
}
