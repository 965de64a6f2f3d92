package kmeans

import (
	"context"

	"github.com/hupe1980/snapmeans/distance"
	"golang.org/x/sync/errgroup"
)

// EmptyPolicy decides what the update step does with a cluster that
// received no records.
type EmptyPolicy int

const (
	// EmptyRetain keeps the cluster's previous centroid.
	EmptyRetain EmptyPolicy = iota
	// EmptyFail aborts the run with *ErrDegenerateCluster.
	EmptyFail
)

func (p EmptyPolicy) String() string {
	switch p {
	case EmptyRetain:
		return "retain"
	case EmptyFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Assign writes the nearest centroid of every record into dst and returns it.
// Ties go to the lowest centroid index. With workers > 1 the records are
// split into contiguous chunks; each record is still written exactly once.
func Assign(ctx context.Context, data, centroids [][]float64, workers int, dst []int) ([]int, error) {
	if cap(dst) < len(data) {
		dst = make([]int, len(data))
	}
	dst = dst[:len(data)]

	if workers <= 1 || len(data) < 2*workers {
		return dst, assignRange(data, centroids, dst, 0, len(data))
	}

	g, _ := errgroup.WithContext(ctx)
	chunk := (len(data) + workers - 1) / workers
	for start := 0; start < len(data); start += chunk {
		end := min(start+chunk, len(data))
		g.Go(func() error {
			return assignRange(data, centroids, dst, start, end)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

func assignRange(data, centroids [][]float64, dst []int, start, end int) error {
	for i := start; i < end; i++ {
		c, _, err := nearest(data[i], centroids)
		if err != nil {
			return err
		}
		dst[i] = c
	}
	return nil
}

// nearest returns the index of the candidate closest to p. The first
// candidate is the initial best, so it wins ties.
func nearest(p []float64, candidates [][]float64) (int, float64, error) {
	best := 0
	bestDist, err := distance.Euclidean(p, candidates[0])
	if err != nil {
		return 0, 0, err
	}
	for j := 1; j < len(candidates); j++ {
		d, err := distance.Euclidean(p, candidates[j])
		if err != nil {
			return 0, 0, err
		}
		if d < bestDist {
			best, bestDist = j, d
		}
	}
	return best, bestDist, nil
}

// SSE returns the sum over records of the squared distance to the assigned
// centroid. Records are visited in order regardless of parallelism elsewhere.
func SSE(data [][]float64, assignment []int, centroids [][]float64) (float64, error) {
	var sse float64
	for i, row := range data {
		d, err := distance.SquaredEuclidean(row, centroids[assignment[i]])
		if err != nil {
			return 0, err
		}
		sse += d
	}
	return sse, nil
}

// Means returns the feature-wise mean of each cluster and its record count.
// The mean of an empty cluster is nil.
func Means(data [][]float64, assignment []int, k int) ([][]float64, []int) {
	dim := 0
	if len(data) > 0 {
		dim = len(data[0])
	}

	sums := make([][]float64, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	counts := make([]int, k)

	for i, row := range data {
		c := assignment[i]
		counts[c]++
		for j, v := range row {
			sums[c][j] += v
		}
	}

	for c := range sums {
		if counts[c] == 0 {
			sums[c] = nil
			continue
		}
		n := float64(counts[c])
		for j := range sums[c] {
			sums[c][j] /= n
		}
	}
	return sums, counts
}

// UpdateResult is the outcome of one update step.
type UpdateResult struct {
	// Indices holds the record index now representing each cluster.
	Indices []int
	// Empty lists clusters that received no records this round.
	Empty []int
}

// Update replaces every centroid with the dataset record nearest its
// cluster mean. prev holds the current centroid record indices and is used
// for empty clusters under EmptyRetain. iteration is only used for error
// reporting.
func Update(ctx context.Context, data [][]float64, assignment []int, prev []int, policy EmptyPolicy, workers, iteration int) (*UpdateResult, error) {
	k := len(prev)
	means, counts := Means(data, assignment, k)

	res := &UpdateResult{Indices: make([]int, k)}
	for c := range counts {
		if counts[c] > 0 {
			continue
		}
		if policy == EmptyFail {
			return nil, &ErrDegenerateCluster{Cluster: c, Iteration: iteration}
		}
		res.Empty = append(res.Empty, c)
		res.Indices[c] = prev[c]
	}

	snap := func(c int) error {
		if means[c] == nil {
			return nil
		}
		idx, _, err := nearest(means[c], data)
		if err != nil {
			return err
		}
		res.Indices[c] = idx
		return nil
	}

	if workers <= 1 {
		for c := 0; c < k; c++ {
			if err := snap(c); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for c := 0; c < k; c++ {
		g.Go(func() error { return snap(c) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
