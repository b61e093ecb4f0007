package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	pts := rng.UniformPoints(8, 3)

	require.Len(t, pts, 8)
	for _, p := range pts {
		require.Len(t, p, 3)
		for _, v := range p {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}

	// Appending to one point must not clobber the next.
	_ = append(pts[0], 42)
	assert.NotEqual(t, 42.0, pts[1][0])
}

func TestBlobs(t *testing.T) {
	rng := NewRNG(4711)
	centers := [][]float64{{0, 0}, {10, 10}}

	pts := rng.Blobs(centers, 25, 0.1)

	require.Len(t, pts, 50)
	for i, p := range pts {
		c := centers[i/25]
		assert.InDelta(t, c[0], p[0], 1)
		assert.InDelta(t, c[1], p[1], 1)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.UniformPoints(1, 4)
	rng.Reset()
	v2 := rng.UniformPoints(1, 4)
	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestSource(t *testing.T) {
	a := NewRNG(1).Source()
	b := NewRNG(1).Source()
	assert.Equal(t, a.Int63(), b.Int63())
}

func TestSSE(t *testing.T) {
	points := [][]float64{{0, 0}, {0, 2}, {5, 5}}
	means := [][]float64{{0, 1}, {5, 5}}

	assert.Equal(t, 2.0, SSE(points, []int{0, 0, 1}, means))
	assert.Equal(t, 1.0, SSE(points, []int{0, -1, 1}, means))
}
