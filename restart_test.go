package clusterkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/clusterkit/testutil"
)

func TestBestOf_FindsSeparatedClusters(t *testing.T) {
	points := testutil.NewRNG(4).Blobs([][]float64{{0, 0}, {10, 0}, {5, 9}}, 50, 0.5)

	best, err := BestOf(context.Background(), points, 3, 6, WithSeed(4))
	require.NoError(t, err)
	require.NotNil(t, best)

	assert.Equal(t, 150, best.Len())
	// Three blobs of variance 0.25 per axis give an SSE near 75; any local
	// minimum merging two blobs is an order of magnitude worse.
	assert.Less(t, best.SSE(), 150.0)

	for k := 0; k < 3; k++ {
		assert.Equal(t, uint64(50), best.Members(k).GetCardinality())
	}
}

func TestBestOf_IsReproducible(t *testing.T) {
	points := testutil.NewRNG(5).UniformPoints(80, 2)

	a, err := BestOfWithOptions(context.Background(), points, 4, 4, BestOfOptions{Concurrency: 1}, WithSeed(9))
	require.NoError(t, err)
	b, err := BestOfWithOptions(context.Background(), points, 4, 4, BestOfOptions{Concurrency: 4}, WithSeed(9))
	require.NoError(t, err)

	assert.Equal(t, a.Means(), b.Means())
	assert.Equal(t, a.SSE(), b.SSE())
}

func TestBestOf_Errors(t *testing.T) {
	_, err := BestOf(context.Background(), nil, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidRestarts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = BestOf(ctx, testutil.NewRNG(1).UniformPoints(10, 2), 2, 3, WithSeed(1))
	assert.ErrorIs(t, err, context.Canceled)
}
