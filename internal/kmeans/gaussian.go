package kmeans

import "math"

// Cov2 is a symmetric 2x2 covariance matrix.
type Cov2 struct {
	XX float64 `json:"xx"`
	XY float64 `json:"xy"`
	YY float64 `json:"yy"`
}

var (
	// defaultCov is the covariance assigned by hard and soft initialization.
	defaultCov = Cov2{XX: 0.1, XY: 0.05, YY: 0.1}
	// defaultGMMCov is the covariance assigned by GMM initialization.
	defaultGMMCov = Cov2{XX: 0.1, YY: 0.1}
)

// Det returns the determinant.
func (c Cov2) Det() float64 {
	return c.XX*c.YY - c.XY*c.XY
}

// Inverse returns the inverse matrix. ok is false when the matrix is singular
// or not positive definite.
func (c Cov2) Inverse() (inv Cov2, ok bool) {
	det := c.Det()
	if !(det > 0) || math.IsInf(det, 0) {
		return Cov2{}, false
	}
	return Cov2{XX: c.YY / det, XY: -c.XY / det, YY: c.XX / det}, true
}

// density evaluates the bivariate normal N(x; mean, c) on the first two
// coordinates. Missing coordinates read as zero. A singular covariance has
// density zero.
func (c Cov2) density(x, mean []float64) float64 {
	inv, ok := c.Inverse()
	if !ok {
		return 0
	}
	dx := coord(x, 0) - coord(mean, 0)
	dy := coord(x, 1) - coord(mean, 1)
	q := dx*(inv.XX*dx+inv.XY*dy) + dy*(inv.XY*dx+inv.YY*dy)
	return math.Exp(-0.5*q) / (2 * math.Pi * math.Sqrt(c.Det()))
}

func coord(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}
