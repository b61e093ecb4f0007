// Package testutil provides testing utilities for clusterkit.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for synthetic
// point clouds.
//
// # Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(100, 2)                          // uniform [0, 1)
//	pts = rng.Blobs([][]float64{{0, 0}, {10, 10}}, 50, 0.5)  // Gaussian blobs
//
// # Clustering Quality
//
//	sse := testutil.SSE(points, labels, means)
package testutil
