// Package kmeans implements the incremental clustering engine.
//
// Three strategies share one Engine:
//
//   - ModeHard: Lloyd's algorithm under a configurable Lp metric
//   - ModeSoft: soft k-means with an exponential kernel exp(-beta*d)
//   - ModeGMM: a two-dimensional Gaussian mixture fitted by EM
//
// Update performs a single step so callers can animate convergence. In hard
// mode a single step runs Lloyd to its fixed point (bounded by MaxSweeps);
// in soft and GMM mode it is one assignment plus one re-estimation.
//
// The Engine is not safe for concurrent use. It never returns errors: empty
// point sets, K == 0, singular covariances and vanishing normalizers all have
// deterministic fallbacks.
//
// Dimensionality is taken from the first point added to an empty set. Later
// points must have the same length; this is a caller contract and is not
// validated.
package kmeans
