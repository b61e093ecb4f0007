// Package distance provides the distance policies used by the clustering engine.
//
// The metric is selected by an integer power:
//
//   - 0: Chebyshev (L∞), max_i |a_i - b_i|
//   - 1: Manhattan (L1), Σ_i |a_i - b_i|
//   - 2: Squared Euclidean, Σ_i (a_i - b_i)^2
//   - p > 2: Σ_i |a_i - b_i|^p
//
// Neither the Euclidean nor the generalized Lp metric takes the final root.
// Rankings are unaffected, which is all nearest-center assignment needs, but
// absolute values differ from the textbook norms. For p > 2 this is most
// likely an accidental simplification carried over for behavioral parity.
//
// # Usage
//
//	d := distance.Distance(a, b, 2)   // squared Euclidean
//	f := distance.ProviderDim(1, 2)   // Manhattan, 2-D fast path
//	w := distance.SoftKernel(distance.Euclidean(a, b), beta)
//
// All functions assume len(a) == len(b); this is the caller's responsibility.
package distance
