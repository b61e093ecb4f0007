package distance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Metric identifies a distance policy by its power.
type Metric int

const (
	MetricChebyshev Metric = iota
	MetricManhattan
	MetricEuclidean
)

func (m Metric) String() string {
	switch {
	case m == MetricChebyshev:
		return "Chebyshev"
	case m == MetricManhattan:
		return "Manhattan"
	case m == MetricEuclidean:
		return "Euclidean"
	case m > MetricEuclidean:
		return fmt.Sprintf("L%d", int(m))
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// kernelFloor is the exponent below which SoftKernel returns exactly zero.
const kernelFloor = -90

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Distance computes the distance between a and b under the given power.
// A negative power is treated as squared Euclidean.
func Distance(a, b []float64, power int) float64 {
	switch {
	case power == 0:
		return floats.Distance(a, b, math.Inf(1))
	case power == 1:
		return floats.Distance(a, b, 1)
	case power > 2:
		p := float64(power)
		var sum float64
		for i := range a {
			sum += math.Pow(math.Abs(a[i]-b[i]), p)
		}
		return sum
	default:
		var sum float64
		for i := range a {
			d := a[i] - b[i]
			sum += d * d
		}
		return sum
	}
}

// Distance2 is the two-dimensional fast path of Distance.
// It returns the same value as Distance for 2-vectors.
func Distance2(a, b []float64, power int) float64 {
	dx := math.Abs(a[0] - b[0])
	dy := math.Abs(a[1] - b[1])
	switch {
	case power == 0:
		return math.Max(dx, dy)
	case power == 1:
		return dx + dy
	case power > 2:
		p := float64(power)
		return math.Pow(dx, p) + math.Pow(dy, p)
	default:
		return dx*dx + dy*dy
	}
}

// Provider returns the general distance function for the given power.
func Provider(power int) Func {
	return func(a, b []float64) float64 {
		return Distance(a, b, power)
	}
}

// ProviderDim returns the distance function for the given power, using the
// 2-D fast path when dim is 2.
func ProviderDim(power, dim int) Func {
	if dim == 2 {
		return func(a, b []float64) float64 {
			return Distance2(a, b, power)
		}
	}
	return Provider(power)
}

// SquaredEuclidean calculates the squared L2 distance between two vectors.
func SquaredEuclidean(a, b []float64) float64 {
	return Distance(a, b, int(MetricEuclidean))
}

// Euclidean calculates the (rooted) L2 distance between two vectors.
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// SoftKernel evaluates exp(-beta*d).
// Exponents below -90 evaluate to exactly zero.
func SoftKernel(d, beta float64) float64 {
	x := -beta * d
	if x < kernelFloor {
		return 0
	}
	return math.Exp(x)
}
