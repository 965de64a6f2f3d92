// Package snapmeans clusters fixed-dimension numeric data with Lloyd-style
// k-means whose centroids are always real records.
//
// Each iteration assigns every record to its nearest centroid, computes the
// sum of squared errors (SSE), and then moves each centroid to the dataset
// record closest to its cluster's feature-wise mean. The run stops when the
// SSE changes by no more than the threshold (default 0.001) between
// iterations, or after the iteration cap (default 100).
//
// # Quick Start
//
//	data, _ := snapmeans.Normalize(rows)
//	res, err := snapmeans.Cluster(ctx, data, 3, snapmeans.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.SSE, res.Iterations, res.State)
//
// # Reporting Order
//
// The update step runs on every iteration, including the one that
// converges, so Result.Centroids are one update past the reported SSE.
// Result.Assignment is the assignment the SSE was computed from.
//
// # Sweeps
//
// Comparing cluster counts takes several random restarts per count, since a
// single run depends on its starting records. Sweep runs them concurrently:
//
//	results, err := snapmeans.Sweep(ctx, data, []int{3, 5, 10}, 10, snapmeans.WithBaseSeed(1))
//	for _, r := range results {
//	    fmt.Printf("k=%d mean SSE=%.4f best=%.4f\n", r.K, r.MeanSSE, r.Best.SSE)
//	}
//
// # Errors
//
//   - *ErrDimensionMismatch: records of different lengths.
//   - *ErrInvalidClusterCount: k <= 0 or k larger than the dataset.
//   - *ErrDegenerateCluster: a cluster emptied under EmptyClusterFail.
package snapmeans
