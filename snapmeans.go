package snapmeans

import (
	"context"
	"math/rand"
	"time"

	"github.com/hupe1980/snapmeans/dataset"
	"github.com/hupe1980/snapmeans/distance"
	"github.com/hupe1980/snapmeans/internal/kmeans"
)

// State is the terminal state of a run.
type State = kmeans.State

const (
	Converged            = kmeans.Converged
	MaxIterationsReached = kmeans.MaxIterationsReached
)

const (
	// DefaultThreshold is the SSE delta at or below which a run converges.
	DefaultThreshold = kmeans.DefaultThreshold
	// DefaultMaxIterations caps the number of iterations.
	DefaultMaxIterations = kmeans.DefaultMaxIterations
)

// Result is the outcome of a clustering run.
type Result struct {
	// SSE is the sum of squared errors computed in the final iteration.
	SSE float64
	// Centroids are copies of the records representing each cluster after
	// the final update.
	Centroids [][]float64
	// CentroidIndices are the dataset positions of Centroids.
	CentroidIndices []int
	// Assignment maps each record to its cluster, as used for SSE.
	Assignment []int
	Iterations int
	State      State
	// History holds the SSE of every iteration, oldest first.
	History []float64
	// EmptyClusters counts clusters retained while empty, over all iterations.
	EmptyClusters int
	// Seed is the seed the random source was built from. It is zero when
	// WithRand or WithInitialIndices was used.
	Seed int64
}

// ClusterSizes returns the number of records assigned to each cluster.
func (r *Result) ClusterSizes() []int {
	sizes := make([]int, len(r.CentroidIndices))
	for _, c := range r.Assignment {
		sizes[c]++
	}
	return sizes
}

// Cluster partitions data into k clusters.
//
// The dataset is read but never modified. Records of different lengths fail
// with *ErrDimensionMismatch; k <= 0 or k > len(data) fail with
// *ErrInvalidClusterCount before any work is done.
func Cluster(ctx context.Context, data [][]float64, k int, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithK(k).WithCount(len(data))

	start := time.Now()
	res, err := cluster(ctx, data, k, o, logger)
	err = translateError(err)

	iterations := 0
	if res != nil {
		iterations = res.Iterations
	}
	o.metricsCollector.RecordRun(k, iterations, time.Since(start), err)
	logger.LogRun(ctx, res, err)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func cluster(ctx context.Context, data [][]float64, k int, o options, logger *Logger) (*Result, error) {
	var seed int64
	rng := o.rng
	if rng == nil && len(o.initialIndices) == 0 {
		seed = o.seed
		if !o.hasSeed {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
		logger = logger.WithSeed(seed)
	}

	kr, err := kmeans.Run(ctx, data, kmeans.Config{
		K:              k,
		Threshold:      o.threshold,
		MaxIterations:  o.maxIterations,
		Rand:           rng,
		InitialIndices: o.initialIndices,
		EmptyPolicy:    o.emptyPolicy,
		Workers:        o.workers,
		OnIteration: func(it kmeans.Iteration) {
			logger.LogIteration(ctx, it.Number, it.SSE, it.Delta)
			o.metricsCollector.RecordIteration(k, it.SSE, it.Delta)
			if len(it.Empty) > 0 {
				logger.LogEmptyClusters(ctx, it.Number, it.Empty)
				for range it.Empty {
					o.metricsCollector.RecordEmptyCluster(k)
				}
			}
		},
	})
	if err != nil {
		return nil, err
	}

	centroids := make([][]float64, len(kr.CentroidIndices))
	for c, idx := range kr.CentroidIndices {
		centroids[c] = append([]float64(nil), data[idx]...)
	}

	return &Result{
		SSE:             kr.SSE,
		Centroids:       centroids,
		CentroidIndices: kr.CentroidIndices,
		Assignment:      kr.Assignment,
		Iterations:      kr.Iterations,
		State:           kr.State,
		History:         kr.History,
		EmptyClusters:   kr.EmptyClusters,
		Seed:            seed,
	}, nil
}

// Normalize returns a min-max rescaled copy of data with every column in
// [0,1]. Constant columns map to 0.
func Normalize(data [][]float64) ([][]float64, error) {
	out, err := dataset.Normalize(data)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q []float64) (float64, error) {
	d, err := distance.Euclidean(p, q)
	if err != nil {
		return 0, translateError(err)
	}
	return d, nil
}
