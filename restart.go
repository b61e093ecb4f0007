package clusterkit

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BestOfOptions tunes BestOf.
type BestOfOptions struct {
	// Run configures each restart. FramesPerSecond and OnStep are ignored.
	Run RunOptions
	// Concurrency caps the restarts running at once. Default: GOMAXPROCS.
	Concurrency int
}

// BestOf clusters points with restarts independently seeded engines and
// returns the one with the lowest SSE. optFns configure every engine; the
// random source of the options seeds the restarts, so WithSeed makes the
// whole search reproducible.
func BestOf(ctx context.Context, points [][]float64, k, restarts int, optFns ...Option) (*Engine, error) {
	return BestOfWithOptions(ctx, points, k, restarts, BestOfOptions{}, optFns...)
}

// BestOfWithOptions is BestOf with explicit run and concurrency settings.
func BestOfWithOptions(ctx context.Context, points [][]float64, k, restarts int, bo BestOfOptions, optFns ...Option) (*Engine, error) {
	if restarts <= 0 {
		return nil, ErrInvalidRestarts
	}
	if bo.Concurrency <= 0 {
		bo.Concurrency = runtime.GOMAXPROCS(0)
	}
	runOpts := bo.Run
	runOpts.FramesPerSecond = 0
	runOpts.OnStep = nil

	o := applyOptions(optFns)
	seeds := make([]int64, restarts)
	for i := range seeds {
		seeds[i] = o.rng.Int63()
	}

	engines := make([]*Engine, restarts)
	sse := make([]float64, restarts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bo.Concurrency)
	for i := range restarts {
		g.Go(func() error {
			opts := append(append([]Option(nil), optFns...), WithSeed(seeds[i]))
			e := New(k, opts...)
			e.AddPoints(points)
			e.InitializeCenters()

			res, err := e.Run(gctx, runOpts)
			if err != nil {
				return err
			}
			engines[i], sse[i] = e, res.SSE
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i := 1; i < restarts; i++ {
		if sse[i] < sse[best] {
			best = i
		}
	}
	o.logger.InfoContext(ctx, "best of restarts selected",
		"restarts", restarts,
		"best", best,
		"sse", sse[best],
	)
	return engines[best], nil
}
