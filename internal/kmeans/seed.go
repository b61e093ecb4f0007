package kmeans

import (
	"slices"

	"github.com/hupe1980/clusterkit/distance"
)

// seedPlusPlus chooses the centers with K-Means++: the first uniformly among
// the points, every further one with probability proportional to D(x)^2, the
// squared distance to the nearest center chosen so far.
func (e *Engine) seedPlusPlus() {
	n := len(e.points)
	taken := make([]bool, n)
	minDist := make([]float64, n)

	first := e.rng.Intn(n)
	taken[first] = true
	e.means[0] = slices.Clone(e.points[first])
	for i, p := range e.points {
		minDist[i] = distance.SquaredEuclidean(p, e.means[0])
	}

	for c := 1; c < e.k; c++ {
		chosen := e.sampleByWeight(taken, minDist)
		if chosen < 0 {
			chosen = slices.Index(taken, false)
		}
		if chosen < 0 {
			// More clusters than points; the superposition guard separates
			// the duplicates on the next Update.
			chosen = e.rng.Intn(n)
		}
		taken[chosen] = true
		e.means[c] = slices.Clone(e.points[chosen])

		for i, p := range e.points {
			if taken[i] {
				continue
			}
			if d := distance.SquaredEuclidean(p, e.means[c]); d < minDist[i] {
				minDist[i] = d
			}
		}
	}
}

// sampleByWeight draws an untaken index with probability proportional to its
// weight using a cumulative scan. It returns -1 when the total weight is zero
// or the scan falls off the end through rounding.
func (e *Engine) sampleByWeight(taken []bool, weights []float64) int {
	var total float64
	for i, w := range weights {
		if !taken[i] {
			total += w
		}
	}
	if !(total > 0) {
		return -1
	}

	target := e.rng.Float64() * total
	var cum float64
	for i, w := range weights {
		if taken[i] || w <= 0 {
			continue
		}
		cum += w
		if cum >= target {
			return i
		}
	}
	return -1
}
