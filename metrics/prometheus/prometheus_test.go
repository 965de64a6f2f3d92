package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/snapmeans"
)

var _ snapmeans.MetricsCollector = (*Collector)(nil)

func TestCollector(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.RecordRun(3, 4, 10*time.Millisecond, nil)
	c.RecordRun(3, 0, time.Millisecond, errors.New("boom"))
	c.RecordIteration(3, 12.5, 1)
	c.RecordIteration(3, 10, 2.5)
	c.RecordEmptyCluster(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("3", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("3", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Iterations.WithLabelValues("3")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.SSE.WithLabelValues("3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.EmptyClusters.WithLabelValues("3")))
}

func TestCollector_Cluster(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	data := [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	_, err := snapmeans.Cluster(context.Background(), data, 2,
		snapmeans.WithInitialIndices(0, 2),
		snapmeans.WithMetricsCollector(c),
	)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("2", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Iterations.WithLabelValues("2")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.SSE.WithLabelValues("2")))

	n, err := testutil.GatherAndCount(reg, "snapmeans_runs_total", "snapmeans_run_iterations")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
