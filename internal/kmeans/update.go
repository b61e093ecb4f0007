package kmeans

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/clusterkit/distance"
)

// UpdateStats describes the work done by one Update call.
type UpdateStats struct {
	// Sweeps is the number of hard-mode assignment sweeps.
	Sweeps int
	// Changed is the number of point reassignments.
	Changed int
	// Separated is the number of duplicate centers moved by the superposition guard.
	Separated int
	// Fallbacks is the number of points whose GMM posterior was degenerate.
	Fallbacks int
}

// Update performs one step of the configured strategy.
//
// On the first iteration hard mode keeps the seeded centers, soft mode
// computes responsibilities without moving the centers, and GMM mode starts
// from a round-robin assignment instead of the untrained Gaussians.
func (e *Engine) Update(first bool) UpdateStats {
	var stats UpdateStats
	if e.k == 0 {
		return stats
	}

	stats.Separated = e.separateCenters()
	prev := slices.Clone(e.assign)

	switch e.cfg.Mode {
	case ModeSoft:
		e.updateSoft(first)
	case ModeGMM:
		stats.Fallbacks = e.updateGMM(first)
	default:
		stats.Sweeps = e.updateHard(first)
	}

	stats.Separated += e.separateCenters()
	for i, a := range e.assign {
		if prev[i] != a {
			stats.Changed++
		}
	}
	e.updateClosest()
	return stats
}

// separateCenters replaces every center that coincides exactly with an
// earlier one by a fresh uniform point.
func (e *Engine) separateCenters() int {
	moved := 0
	for i := 0; i < len(e.means); i++ {
		for j := i + 1; j < len(e.means); j++ {
			if slices.Equal(e.means[i], e.means[j]) {
				e.means[j] = e.uniformPoint()
				moved++
			}
		}
	}
	return moved
}

// updateHard runs Lloyd's algorithm until no point changes cluster or
// MaxSweeps is reached. It returns the number of sweeps.
func (e *Engine) updateHard(first bool) int {
	if first || len(e.points) == 0 {
		return 0
	}
	dist := distance.ProviderDim(e.cfg.Power, e.dim)

	sweeps := 0
	for sweeps < e.cfg.MaxSweeps {
		sweeps++
		changed := false
		for i, p := range e.points {
			if c := e.nearest(p, dist); c != e.assign[i] {
				e.assign[i] = c
				changed = true
			}
		}
		e.recomputeHardMeans()
		if !changed {
			break
		}
	}

	for i, c := range e.assign {
		oneHot(e.resp[i], c)
	}
	return sweeps
}

// nearest returns the index of the closest center; ties go to the lowest index.
func (e *Engine) nearest(p []float64, dist distance.Func) int {
	best := 0
	bestDist := dist(p, e.means[0])
	for c := 1; c < len(e.means); c++ {
		if d := dist(p, e.means[c]); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// recomputeHardMeans moves every non-empty cluster to the mean of its points.
func (e *Engine) recomputeHardMeans() {
	sums := make([][]float64, e.k)
	counts := make([]int, e.k)
	for i, p := range e.points {
		c := e.assign[i]
		if c < 0 {
			continue
		}
		if sums[c] == nil {
			sums[c] = make([]float64, e.dim)
		}
		floats.Add(sums[c], p)
		counts[c]++
	}
	for c := range e.means {
		if counts[c] == 0 {
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
		e.means[c] = sums[c]
	}
}

func (e *Engine) updateSoft(first bool) {
	for i, p := range e.points {
		e.softResponsibility(p, e.resp[i])
	}
	if !first {
		e.recomputeWeightedMeans()
	}
	e.syncAssignments()
}

// softResponsibility writes the normalized kernel weights of p into dst.
// When every weight underflows the point is assigned to its nearest center.
func (e *Engine) softResponsibility(p, dst []float64) {
	var sum float64
	for c, m := range e.means {
		dst[c] = distance.SoftKernel(distance.Euclidean(m, p), e.cfg.Beta)
		sum += dst[c]
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		oneHot(dst, e.nearest(p, distance.SquaredEuclidean))
		return
	}
	floats.Scale(1/sum, dst)
}

// recomputeWeightedMeans sets each center to the responsibility-weighted
// average of all points. Clusters without mass keep their mean.
func (e *Engine) recomputeWeightedMeans() {
	for c := range e.means {
		sum := make([]float64, e.dim)
		var mass float64
		for i, p := range e.points {
			r := e.resp[i][c]
			if r == 0 {
				continue
			}
			floats.AddScaled(sum, r, p)
			mass += r
		}
		if mass == 0 {
			continue
		}
		floats.Scale(1/mass, sum)
		e.means[c] = sum
	}
}

// updateGMM runs one EM step and returns the number of round-robin fallbacks.
func (e *Engine) updateGMM(first bool) int {
	fallbacks := 0
	for i, p := range e.points {
		if first {
			oneHot(e.resp[i], i%e.k)
			continue
		}
		if !e.gaussianResponsibility(p, e.resp[i]) {
			oneHot(e.resp[i], i%e.k)
			fallbacks++
		}
	}
	e.maximize()
	e.syncAssignments()
	return fallbacks
}

// gaussianResponsibility writes the mixture posterior of p into dst. It
// reports false, leaving dst unspecified, when the normalizer is zero or
// not finite.
func (e *Engine) gaussianResponsibility(p, dst []float64) bool {
	var sum float64
	for c := range e.means {
		dst[c] = e.priors[c] * e.sigmas[c].density(p, e.means[c])
		sum += dst[c]
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		return false
	}
	floats.Scale(1/sum, dst)
	return true
}

// maximize re-estimates priors, means and covariances from the current
// responsibilities. Components without mass get a zero prior and keep their
// mean and covariance.
func (e *Engine) maximize() {
	n := len(e.points)
	if n == 0 {
		return
	}
	for c := range e.means {
		mean := make([]float64, e.dim)
		var mass float64
		for i, p := range e.points {
			if r := e.resp[i][c]; r > 0 {
				floats.AddScaled(mean, r, p)
				mass += r
			}
		}
		e.priors[c] = mass / float64(n)
		if mass == 0 {
			continue
		}
		floats.Scale(1/mass, mean)

		var cov Cov2
		for i, p := range e.points {
			r := e.resp[i][c]
			if r == 0 {
				continue
			}
			dx := coord(p, 0) - coord(mean, 0)
			dy := coord(p, 1) - coord(mean, 1)
			cov.XX += r * dx * dx
			cov.XY += r * dx * dy
			cov.YY += r * dy * dy
		}
		cov.XX /= mass
		cov.XY /= mass
		cov.YY /= mass

		e.means[c] = mean
		e.sigmas[c] = cov
	}
}

// syncAssignments derives the hard assignment from the responsibility rows.
func (e *Engine) syncAssignments() {
	for i, r := range e.resp {
		e.assign[i] = floats.MaxIdx(r)
	}
}

// updateClosest records, per cluster, the point nearest to its mean.
func (e *Engine) updateClosest() {
	for c, m := range e.means {
		best := -1
		bestDist := math.Inf(1)
		for i, p := range e.points {
			if d := distance.SquaredEuclidean(p, m); d < bestDist {
				best, bestDist = i, d
			}
		}
		e.closest[c] = best
	}
}

// Test returns the responsibility vector of sample under the current
// parameters without changing any state. It returns an empty vector when
// there are no clusters.
func (e *Engine) Test(sample []float64) []float64 {
	out := make([]float64, e.k)
	if e.k == 0 {
		return out
	}
	switch e.cfg.Mode {
	case ModeHard:
		oneHot(out, e.nearest(sample, distance.ProviderDim(e.cfg.Power, e.dim)))
	case ModeGMM:
		if !e.gaussianResponsibility(sample, out) {
			e.softResponsibility(sample, out)
		}
	default:
		e.softResponsibility(sample, out)
	}
	return out
}

// SSE returns the within-cluster sum of squared Euclidean distances, each
// point counted against its nearest center.
func (e *Engine) SSE() float64 {
	if e.k == 0 {
		return 0
	}
	var sse float64
	for _, p := range e.points {
		sse += distance.SquaredEuclidean(p, e.means[e.nearest(p, distance.SquaredEuclidean)])
	}
	return sse
}

func oneHot(dst []float64, c int) {
	for i := range dst {
		dst[i] = 0
	}
	if c >= 0 && c < len(dst) {
		dst[c] = 1
	}
}
