package kmeans

import "slices"

// State is a complete, detached copy of an Engine's data.
type State struct {
	Config           Config      `json:"config"`
	Dim              int         `json:"dim"`
	K                int         `json:"k"`
	Points           [][]float64 `json:"points"`
	Means            [][]float64 `json:"means"`
	Responsibilities [][]float64 `json:"responsibilities"`
	Assignments      []int       `json:"assignments"`
	Priors           []float64   `json:"priors"`
	Covariances      []Cov2      `json:"covariances"`
}

// State exports a deep copy of the engine data.
func (e *Engine) State() State {
	return State{
		Config:           e.cfg,
		Dim:              e.dim,
		K:                e.k,
		Points:           cloneRows(e.points),
		Means:            cloneRows(e.means),
		Responsibilities: cloneRows(e.resp),
		Assignments:      slices.Clone(e.assign),
		Priors:           slices.Clone(e.priors),
		Covariances:      slices.Clone(e.sigmas),
	}
}

// Restore replaces the engine data with a deep copy of s. Per-cluster and
// per-point sections whose lengths do not match K or the point count are
// reset to their initial values instead of being trusted. The point width
// overrides s.Dim, and means of another width are re-seeded.
func (e *Engine) Restore(s State) {
	e.cfg = s.Config.normalized()
	e.k = max(s.K, 0)
	e.dim = s.Dim
	e.points = cloneRows(s.Points)
	if len(e.points) > 0 {
		// Points of mixed width are dropped.
		if !validRows(e.points, len(e.points), len(e.points[0])) {
			e.points = nil
		} else {
			e.dim = len(e.points[0])
		}
	}
	if e.dim <= 0 {
		e.dim = defaultDim
	}

	if !validRows(s.Means, e.k, e.dim) {
		e.InitializeCenters()
		return
	}
	e.means = cloneRows(s.Means)

	e.priors = slices.Clone(s.Priors)
	if len(e.priors) != e.k {
		e.priors = make([]float64, e.k)
		for i := range e.priors {
			e.priors[i] = 1 / float64(e.k)
		}
	}
	e.sigmas = slices.Clone(s.Covariances)
	if len(e.sigmas) != e.k {
		cov := defaultCov
		if e.cfg.Mode == ModeGMM {
			cov = defaultGMMCov
		}
		e.sigmas = make([]Cov2, e.k)
		for i := range e.sigmas {
			e.sigmas[i] = cov
		}
	}

	if validRows(s.Responsibilities, len(e.points), e.k) && validAssignments(s.Assignments, len(e.points), e.k) {
		e.resp = cloneRows(s.Responsibilities)
		e.assign = slices.Clone(s.Assignments)
	} else {
		e.resetResponsibilities()
	}

	e.closest = make([]int, e.k)
	if e.k > 0 {
		e.updateClosest()
	}
}

func validRows(rows [][]float64, n, width int) bool {
	if len(rows) != n {
		return false
	}
	for _, r := range rows {
		if len(r) != width {
			return false
		}
	}
	return true
}

func validAssignments(assign []int, n, k int) bool {
	if len(assign) != n {
		return false
	}
	for _, a := range assign {
		if a < -1 || a >= k {
			return false
		}
	}
	return true
}
