// Package testutil provides testing utilities for snapmeans.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random sources and synthetic datasets.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	data := rng.UniformPoints(100, 2)   // uniform [0, 1)
//
// # Separated Blobs
//
//	data, labels := rng.Blobs(5, 40, 2, 20, 1)
//
// # Scripted Sources
//
//	rng := testutil.Scripted(0, 2) // Intn returns 0, then 2, then repeats
package testutil
