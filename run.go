package clusterkit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/hupe1980/clusterkit/distance"
)

const (
	// DefaultMaxSteps bounds a Run when RunOptions.MaxSteps is not set.
	DefaultMaxSteps = 100
	// DefaultTolerance is the center shift below which a Run has converged.
	DefaultTolerance = 1e-9
)

// RunOptions configures Run.
type RunOptions struct {
	// MaxSteps caps the number of Update(false) calls. Default: DefaultMaxSteps.
	MaxSteps int
	// Tolerance is the largest Euclidean center shift still counted as
	// converged. Default: DefaultTolerance.
	Tolerance float64
	// FramesPerSecond paces the steps for animation. Zero runs unpaced.
	FramesPerSecond float64
	// OnStep, if set, is called after every step without holding the engine
	// lock.
	OnStep func(StepInfo)
}

// StepInfo describes one Run step.
type StepInfo struct {
	RunID string
	Step  int
	Means [][]float64
	// Shift is the largest Euclidean distance a center moved in this step.
	Shift float64
	Stats UpdateStats
}

// RunResult summarizes a Run.
type RunResult struct {
	RunID     string
	Steps     int
	Converged bool
	Shift     float64
	SSE       float64
	Duration  time.Duration
}

// Run performs Update(true) followed by Update(false) steps until the
// centers stop moving, MaxSteps is reached or ctx is done. A canceled run
// keeps the state of the last completed step.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if !(opts.Tolerance > 0) {
		opts.Tolerance = DefaultTolerance
	}

	res := RunResult{RunID: uuid.NewString()}
	start := time.Now()
	logger := e.logger.WithRunID(res.RunID)

	var limiter *rate.Limiter
	if opts.FramesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.FramesPerSecond), 1)
	}

	finish := func(err error) (RunResult, error) {
		e.mu.Lock()
		res.SSE = e.eng.SSE()
		e.lastRunID = res.RunID
		e.mu.Unlock()
		res.Duration = time.Since(start)
		logger.LogRun(ctx, res, err)
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return finish(err)
	}

	e.mu.Lock()
	e.update(ctx, true)
	e.mu.Unlock()

	for res.Steps < opts.MaxSteps {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return finish(err)
			}
		}
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		e.mu.Lock()
		prev := e.eng.Means()
		stats := e.update(ctx, false)
		means := e.eng.Means()
		e.mu.Unlock()

		res.Steps++
		res.Shift = maxShift(prev, means)
		if opts.OnStep != nil {
			opts.OnStep(StepInfo{
				RunID: res.RunID,
				Step:  res.Steps,
				Means: means,
				Shift: res.Shift,
				Stats: stats,
			})
		}
		if res.Shift <= opts.Tolerance && stats.Changed == 0 {
			res.Converged = true
			break
		}
	}
	return finish(nil)
}

func maxShift(prev, next [][]float64) float64 {
	var shift float64
	for i := range next {
		if i >= len(prev) || len(prev[i]) != len(next[i]) {
			continue
		}
		shift = max(shift, distance.Euclidean(prev[i], next[i]))
	}
	return shift
}
