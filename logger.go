package snapmeans

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with snapmeans-specific context.
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

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithSeed adds a seed field to the logger.
func (l *Logger) WithSeed(seed int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogIteration logs one completed iteration body.
func (l *Logger) LogIteration(ctx context.Context, iteration int, sse, delta float64) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"sse", sse,
		"delta", delta,
	)
}

// LogEmptyClusters logs clusters that kept their previous centroid.
func (l *Logger) LogEmptyClusters(ctx context.Context, iteration int, clusters []int) {
	l.WarnContext(ctx, "empty clusters retained previous centroid",
		"iteration", iteration,
		"clusters", clusters,
	)
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, res *Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"state", res.State.String(),
		"iterations", res.Iterations,
		"sse", res.SSE,
		"empty_clusters", res.EmptyClusters,
	)
}

// LogSweep logs the aggregate of one cluster count in a sweep.
func (l *Logger) LogSweep(ctx context.Context, r SweepResult) {
	l.InfoContext(ctx, "sweep completed",
		"k", r.K,
		"restarts", len(r.Runs),
		"mean_sse", r.MeanSSE,
		"min_sse", r.MinSSE,
		"max_sse", r.MaxSSE,
	)
}
