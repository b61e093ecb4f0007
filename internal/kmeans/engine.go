package kmeans

import (
	"math/rand"
	"slices"
)

// defaultDim is used until the first point fixes the dimensionality.
const defaultDim = 2

// Engine owns a point set and K cluster centers.
type Engine struct {
	cfg Config
	rng *rand.Rand

	dim    int
	points [][]float64

	k       int
	means   [][]float64
	priors  []float64
	sigmas  []Cov2
	closest []int

	// resp holds one responsibility row of length k per point.
	resp [][]float64
	// assign holds the hard assignment per point (-1 = unassigned).
	assign []int
}

// New creates an engine with k clusters seeded from rng.
// A nil rng selects a deterministic source seeded with 1.
func New(k int, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	e := &Engine{
		cfg: DefaultConfig(),
		rng: rng,
		dim: defaultDim,
	}
	e.SetClusterCount(k)
	return e
}

// Config returns the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetConfig replaces the configuration. Invalid values are clamped.
// Changing the mode does not re-seed the centers.
func (e *Engine) SetConfig(cfg Config) { e.cfg = cfg.normalized() }

// SetMode selects the clustering strategy.
func (e *Engine) SetMode(m Mode) {
	e.cfg.Mode = m
	e.cfg = e.cfg.normalized()
}

// SetBeta sets the soft stiffness. Non-positive values become MinBeta.
func (e *Engine) SetBeta(beta float64) {
	e.cfg.Beta = beta
	e.cfg = e.cfg.normalized()
}

// SetPower selects the hard-mode metric. Negative values select Euclidean.
func (e *Engine) SetPower(power int) {
	e.cfg.Power = power
	e.cfg = e.cfg.normalized()
}

// SetPlusPlus toggles K-Means++ seeding for subsequent initializations.
func (e *Engine) SetPlusPlus(on bool) { e.cfg.PlusPlus = on }

// SetMaxSweeps bounds the Lloyd loop. Non-positive values restore the default.
func (e *Engine) SetMaxSweeps(n int) {
	e.cfg.MaxSweeps = n
	e.cfg = e.cfg.normalized()
}

// Dim returns the point dimensionality.
func (e *Engine) Dim() int { return e.dim }

// Len returns the number of points.
func (e *Engine) Len() int { return len(e.points) }

// AddPoint appends a copy of p.
func (e *Engine) AddPoint(p []float64) {
	e.AddPoints([][]float64{p})
}

// AddPoints appends copies of ps. When the set was empty the first point
// fixes the dimensionality, and centers of a different dimensionality are
// re-seeded from the new points.
func (e *Engine) AddPoints(ps [][]float64) {
	if len(ps) == 0 {
		return
	}
	reseed := false
	if len(e.points) == 0 {
		e.dim = len(ps[0])
		reseed = len(e.means) > 0 && len(e.means[0]) != e.dim
	}
	for _, p := range ps {
		e.points = append(e.points, slices.Clone(p))
		e.resp = append(e.resp, make([]float64, e.k))
		e.assign = append(e.assign, -1)
	}
	if reseed {
		e.InitializeCenters()
	}
}

// SetPoint overwrites point i. Out-of-range indices are ignored.
func (e *Engine) SetPoint(i int, p []float64) {
	if i < 0 || i >= len(e.points) {
		return
	}
	e.points[i] = slices.Clone(p)
}

// Points returns a copy of the point set.
func (e *Engine) Points() [][]float64 { return cloneRows(e.points) }

// Clear empties the point set. Centers are kept.
func (e *Engine) Clear() {
	e.points = nil
	e.resp = nil
	e.assign = nil
	for i := range e.closest {
		e.closest[i] = -1
	}
}

// ClusterCount returns K.
func (e *Engine) ClusterCount() int { return e.k }

// SetClusterCount sets K and re-seeds the centers. Negative values become 0.
func (e *Engine) SetClusterCount(k int) {
	if k < 0 {
		k = 0
	}
	e.k = k
	e.InitializeCenters()
}

// InitializeCenters (re)populates the K centers and resets the mixture
// parameters and all responsibilities.
func (e *Engine) InitializeCenters() {
	e.means = make([][]float64, e.k)
	switch {
	case e.k == 0:
	case len(e.points) == 0:
		for i := range e.means {
			e.means[i] = e.uniformPoint()
		}
	case e.cfg.PlusPlus:
		e.seedPlusPlus()
	default:
		for i := range e.means {
			e.means[i] = slices.Clone(e.points[e.rng.Intn(len(e.points))])
		}
	}

	cov := defaultCov
	if e.cfg.Mode == ModeGMM {
		cov = defaultGMMCov
	}
	e.priors = make([]float64, e.k)
	e.sigmas = make([]Cov2, e.k)
	for i := 0; i < e.k; i++ {
		e.priors[i] = 1 / float64(e.k)
		e.sigmas[i] = cov
	}
	e.closest = make([]int, e.k)
	for i := range e.closest {
		e.closest[i] = -1
	}
	e.resetResponsibilities()
}

func (e *Engine) resetResponsibilities() {
	e.resp = make([][]float64, len(e.points))
	e.assign = make([]int, len(e.points))
	for i := range e.points {
		e.resp[i] = make([]float64, e.k)
		e.assign[i] = -1
	}
}

// uniformPoint draws a point from [0,1)^dim.
func (e *Engine) uniformPoint() []float64 {
	p := make([]float64, e.dim)
	for i := range p {
		p[i] = e.rng.Float64()
	}
	return p
}

// Mean returns a copy of center i, or nil when i is out of range.
func (e *Engine) Mean(i int) []float64 {
	if i < 0 || i >= len(e.means) {
		return nil
	}
	return slices.Clone(e.means[i])
}

// Means returns a copy of all centers.
func (e *Engine) Means() [][]float64 { return cloneRows(e.means) }

// Priors returns a copy of the mixture weights.
func (e *Engine) Priors() []float64 { return slices.Clone(e.priors) }

// Covariances returns a copy of the per-cluster covariances.
func (e *Engine) Covariances() []Cov2 { return slices.Clone(e.sigmas) }

// ClosestPointIndices returns, per cluster, the index of the point nearest
// to its mean after the last Update (-1 when unknown).
func (e *Engine) ClosestPointIndices() []int { return slices.Clone(e.closest) }

// Responsibilities returns a copy of the per-point responsibility rows.
func (e *Engine) Responsibilities() [][]float64 { return cloneRows(e.resp) }

// Assignments returns the per-point cluster index with the highest
// responsibility after the last Update (-1 before any assignment).
func (e *Engine) Assignments() []int { return slices.Clone(e.assign) }

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}
