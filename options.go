package snapmeans

import (
	"log/slog"

	"github.com/hupe1980/snapmeans/internal/kmeans"
)

// EmptyClusterPolicy decides what happens when a cluster receives no records.
type EmptyClusterPolicy = kmeans.EmptyPolicy

const (
	// EmptyClusterRetain keeps the cluster's previous centroid (default).
	EmptyClusterRetain = kmeans.EmptyRetain
	// EmptyClusterFail aborts the run with *ErrDegenerateCluster.
	EmptyClusterFail = kmeans.EmptyFail
)

// Intner is a source of uniformly distributed indices, satisfied by *rand.Rand.
type Intner = kmeans.Intner

type options struct {
	threshold        float64
	maxIterations    int
	seed             int64
	hasSeed          bool
	rng              Intner
	initialIndices   []int
	emptyPolicy      EmptyClusterPolicy
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a clustering run.
type Option func(*options)

// WithThreshold sets the SSE delta at or below which a run converges.
// Non-positive values keep the default of 0.001.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithMaxIterations caps the number of iterations.
// Non-positive values keep the default of 100.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithSeed makes initialization reproducible.
// Without it the seed is taken from the wall clock and reported in Result.Seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// WithRand supplies the random source used for initialization.
// It takes precedence over WithSeed.
func WithRand(rng Intner) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithInitialIndices starts the run from the given records instead of a
// random draw. The slice must hold k distinct, in-range indices.
func WithInitialIndices(indices ...int) Option {
	return func(o *options) {
		o.initialIndices = indices
	}
}

// WithEmptyClusterPolicy selects how empty clusters are handled.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.emptyPolicy = p
	}
}

// WithWorkers spreads the assignment and snapping work across n goroutines.
// Results are identical to a sequential run. n <= 1 disables it.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &snapmeans.BasicMetricsCollector{}
//	res, _ := snapmeans.Cluster(ctx, data, 3, snapmeans.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Iterations: %d\n", stats.RunCount, stats.IterationCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := snapmeans.NewJSONLogger(slog.LevelDebug)
//	res, _ := snapmeans.Cluster(ctx, data, 3, snapmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		threshold:        kmeans.DefaultThreshold,
		maxIterations:    kmeans.DefaultMaxIterations,
		emptyPolicy:      EmptyClusterRetain,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
