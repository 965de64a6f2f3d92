package snapmeans_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/snapmeans"
)

// Example_cluster partitions four points into two clusters from fixed
// starting records.
func Example_cluster() {
	data := [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}

	res, err := snapmeans.Cluster(context.Background(), data, 2, snapmeans.WithInitialIndices(0, 2))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("assignment:", res.Assignment)
	fmt.Println("centroids:", res.Centroids)
	fmt.Println("iterations:", res.Iterations, res.State)
	fmt.Println("sse:", res.SSE)
	// Output:
	// assignment: [0 0 1 1]
	// centroids: [[0 0] [10 10]]
	// iterations: 2 converged
	// sse: 2
}

// Example_normalize rescales every column into [0,1].
func Example_normalize() {
	out, err := snapmeans.Normalize([][]float64{{15, 39}, {16, 81}, {17, 6}})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f\n", out)
	// Output: [[0.00 0.44] [0.50 1.00] [1.00 0.00]]
}

// Example_sweep compares cluster counts over several restarts.
func Example_sweep() {
	data := [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}, {20, 0}, {20, 1}}

	results, err := snapmeans.Sweep(context.Background(), data, []int{3}, 5, snapmeans.WithBaseSeed(1))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("k:", results[0].K, "runs:", len(results[0].Runs))
	// Output: k: 3 runs: 5
}
