package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Source returns an independent *rand.Rand derived from the next value of r.
// Engines are not thread-safe, so each gets its own source.
func (r *RNG) Source() *rand.Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rand.New(rand.NewSource(r.rand.Int63()))
}

// UniformPoints generates points with coordinates in [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}
	return points
}

// Blobs generates perCenter points around each center with isotropic
// Gaussian noise of the given spread. Points are grouped by center, in the
// order the centers are given.
func (r *RNG) Blobs(centers [][]float64, perCenter int, spread float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([][]float64, 0, len(centers)*perCenter)
	for _, c := range centers {
		for range perCenter {
			p := make([]float64, len(c))
			for j := range p {
				p[j] = c[j] + r.rand.NormFloat64()*spread
			}
			points = append(points, p)
		}
	}
	return points
}

// SSE computes the within-cluster sum of squared Euclidean distances of the
// labelled points. Points with a negative label are skipped.
func SSE(points [][]float64, labels []int, means [][]float64) float64 {
	var sse float64
	for i, p := range points {
		l := labels[i]
		if l < 0 {
			continue
		}
		for j := range p {
			d := p[j] - means[l][j]
			sse += d * d
		}
	}
	return sse
}
