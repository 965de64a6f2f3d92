// Package prometheus exports clustering metrics to Prometheus.
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "snapmeans"

// Collector implements snapmeans.MetricsCollector on Prometheus vectors.
// All series are labeled by cluster count.
type Collector struct {
	// Runs counts finished runs by k and status (success/error).
	Runs *prometheus.CounterVec
	// RunDuration observes run wall time in seconds.
	RunDuration *prometheus.HistogramVec
	// RunIterations observes the number of iterations per successful run.
	RunIterations *prometheus.HistogramVec
	// Iterations counts iteration bodies.
	Iterations *prometheus.CounterVec
	// SSE holds the most recent iteration's SSE.
	SSE *prometheus.GaugeVec
	// EmptyClusters counts clusters retained while empty.
	EmptyClusters *prometheus.CounterVec
}

// New registers the collector's metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total clustering runs",
			},
			[]string{"k", "status"}, // status: success/error
		),
		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Clustering run latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"k"},
		),
		RunIterations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_iterations",
				Help:      "Iterations needed per successful run",
				Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
			},
			[]string{"k"},
		),
		Iterations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "iterations_total",
				Help:      "Total iteration bodies executed",
			},
			[]string{"k"},
		),
		SSE: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sse",
				Help:      "Sum of squared errors of the latest iteration",
			},
			[]string{"k"},
		),
		EmptyClusters: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "empty_clusters_total",
				Help:      "Clusters that kept their previous centroid because no record was assigned",
			},
			[]string{"k"},
		),
	}
}

// RecordRun implements snapmeans.MetricsCollector.
func (c *Collector) RecordRun(k, iterations int, duration time.Duration, err error) {
	label := strconv.Itoa(k)
	status := "success"
	if err != nil {
		status = "error"
	}
	c.Runs.WithLabelValues(label, status).Inc()
	c.RunDuration.WithLabelValues(label).Observe(duration.Seconds())
	if err == nil {
		c.RunIterations.WithLabelValues(label).Observe(float64(iterations))
	}
}

// RecordIteration implements snapmeans.MetricsCollector.
func (c *Collector) RecordIteration(k int, sse, _ float64) {
	label := strconv.Itoa(k)
	c.Iterations.WithLabelValues(label).Inc()
	c.SSE.WithLabelValues(label).Set(sse)
}

// RecordEmptyCluster implements snapmeans.MetricsCollector.
func (c *Collector) RecordEmptyCluster(k int) {
	c.EmptyClusters.WithLabelValues(strconv.Itoa(k)).Inc()
}
