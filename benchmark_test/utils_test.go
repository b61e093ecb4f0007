package benchmark_test

import (
	"fmt"

	"github.com/hupe1980/clusterkit/testutil"
)

func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%dK", n/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// gridBlobs returns k well separated blobs of n points in total.
func gridBlobs(seed int64, n, k int) [][]float64 {
	centers := make([][]float64, k)
	for i := range centers {
		centers[i] = []float64{float64(i%4) * 10, float64(i/4) * 10}
	}
	return testutil.NewRNG(seed).Blobs(centers, max(n/k, 1), 1)
}
