// Package clusterkit provides K-Means, Soft K-Means and Gaussian-mixture
// clustering over an owned point set, for interactive and batch use.
//
// # Quick Start
//
//	eng := clusterkit.New(3, clusterkit.WithMode(clusterkit.ModeSoft), clusterkit.WithSeed(42))
//	eng.AddPoints(points)
//	eng.InitializeCenters()
//
//	res, err := eng.Run(ctx, clusterkit.RunOptions{MaxSteps: 100})
//	fmt.Println(res.Steps, eng.Means())
//
//	r := eng.Test([]float64{0.3, 0.7}) // per-cluster responsibilities, sums to 1
//
// # Modes
//
//   - ModeHard: Lloyd's algorithm with a selectable metric (see WithPower).
//   - ModeSoft: exponential-kernel soft assignment with stiffness Beta.
//   - ModeGMM:  expectation-maximization of a 2-D Gaussian mixture.
//
// # Stepping
//
// Update(true) must be called once after seeding; it establishes the first
// assignment without moving hard or soft centers. Each later Update(false)
// performs one step: a full Lloyd pass in hard mode, one weighted-mean
// update in soft mode, one EM iteration in GMM mode. Run drives this loop
// until the centers stop moving, optionally paced for animation.
//
// # Restarts and persistence
//
// BestOf runs independently seeded engines in parallel and keeps the one
// with the lowest within-cluster sum of squares. Save and Load persist the
// complete engine state as a checksummed snapshot in any blobstore.BlobStore
// (local disk, memory, S3, MinIO).
//
// # Concurrency
//
// Engine is safe for concurrent use; every operation is serialized by an
// internal mutex.
package clusterkit
