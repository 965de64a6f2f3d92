package snapmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordRun is called after each clustering run.
	// iterations is 0 when the run failed before iterating.
	RecordRun(k, iterations int, duration time.Duration, err error)

	// RecordIteration is called after each iteration body with its SSE delta.
	RecordIteration(k int, sse, delta float64)

	// RecordEmptyCluster is called once per cluster retained while empty.
	RecordEmptyCluster(k int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int, float64, float64)   {}
func (NoopMetricsCollector) RecordEmptyCluster(int)                   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount       atomic.Int64
	RunErrors      atomic.Int64
	RunTotalNanos  atomic.Int64
	IterationCount atomic.Int64
	EmptyClusters  atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_, _ int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(int, float64, float64) {
	b.IterationCount.Add(1)
}

// RecordEmptyCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEmptyCluster(int) {
	b.EmptyClusters.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		RunAvgNanos:    b.getAvgRunNanos(),
		IterationCount: b.IterationCount.Load(),
		EmptyClusters:  b.EmptyClusters.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount       int64
	RunErrors      int64
	RunAvgNanos    int64
	IterationCount int64
	EmptyClusters  int64
}
