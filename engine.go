package clusterkit

import (
	"context"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/clusterkit/codec"
	"github.com/hupe1980/clusterkit/internal/kmeans"
	"github.com/hupe1980/clusterkit/snapshot"
)

// Mode selects the clustering strategy.
type Mode = kmeans.Mode

const (
	ModeHard = kmeans.ModeHard
	ModeSoft = kmeans.ModeSoft
	ModeGMM  = kmeans.ModeGMM
)

// MinBeta is the floor applied to non-positive soft stiffness values.
const MinBeta = kmeans.MinBeta

// ParseMode parses "hard", "soft" or "gmm" (and a few aliases).
func ParseMode(s string) (Mode, bool) { return kmeans.ParseMode(s) }

type (
	// Config holds the strategy parameters.
	Config = kmeans.Config
	// Cov2 is a symmetric 2x2 covariance matrix.
	Cov2 = kmeans.Cov2
	// UpdateStats describes the work done by one Update.
	UpdateStats = kmeans.UpdateStats
)

// DefaultConfig returns the engine defaults: hard mode, Beta 1, squared
// Euclidean, K-Means++ seeding, 1000 Lloyd sweeps.
func DefaultConfig() Config { return kmeans.DefaultConfig() }

// Engine is a concurrency-safe clustering engine.
type Engine struct {
	mu  sync.Mutex
	eng *kmeans.Engine

	logger      *Logger
	metrics     MetricsCollector
	codec       codec.Codec
	compression snapshot.Compression
	// lastRunID is the id of the most recent Run, recorded in snapshots.
	lastRunID string
	// gmmDimWarned is set once a GMM update on 1-D data has been logged.
	gmmDimWarned bool
}

// New creates an engine with k clusters. Centers are seeded uniformly in
// [0,1)^2 until points are added and InitializeCenters is called.
func New(k int, optFns ...Option) *Engine {
	o := applyOptions(optFns)

	eng := kmeans.New(0, o.rng)
	eng.SetConfig(o.config)

	e := &Engine{
		eng:         eng,
		logger:      o.logger,
		metrics:     o.metricsCollector,
		codec:       o.codec,
		compression: o.compression,
	}
	e.mu.Lock()
	e.setClusterCount(context.Background(), k)
	e.mu.Unlock()
	return e
}

// Config returns the current configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Config()
}

// SetConfig replaces the configuration. Invalid values are clamped.
func (e *Engine) SetConfig(cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.SetConfig(cfg)
}

// Mode returns the clustering strategy.
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Config().Mode
}

// SetMode selects the clustering strategy. Centers are kept; call
// InitializeCenters to reset the mixture parameters for the new mode.
func (e *Engine) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.SetMode(m)
}

// SetBeta sets the soft stiffness. Non-positive values become MinBeta.
func (e *Engine) SetBeta(beta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.SetBeta(beta)
}

// SetPower selects the hard-mode metric.
func (e *Engine) SetPower(power int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.SetPower(power)
}

// SetPlusPlus toggles K-Means++ seeding for later initializations.
func (e *Engine) SetPlusPlus(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.SetPlusPlus(on)
}

// SetMaxSweeps bounds the Lloyd loop of one hard-mode Update.
func (e *Engine) SetMaxSweeps(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.SetMaxSweeps(n)
}

// Dim returns the point dimensionality.
func (e *Engine) Dim() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Dim()
}

// Len returns the number of points.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Len()
}

// AddPoint appends a copy of p. The first point added to an empty engine
// fixes the dimensionality; all later points and samples must match it.
func (e *Engine) AddPoint(p []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.AddPoint(p)
}

// AddPoints appends copies of ps.
func (e *Engine) AddPoints(ps [][]float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.AddPoints(ps)
}

// SetPoint overwrites point i. Out-of-range indices are ignored.
func (e *Engine) SetPoint(i int, p []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.SetPoint(i, p)
}

// Points returns a copy of the point set.
func (e *Engine) Points() [][]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Points()
}

// Clear removes all points. Centers are kept.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.Clear()
}

// ClusterCount returns K.
func (e *Engine) ClusterCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.ClusterCount()
}

// SetClusterCount sets K and re-seeds the centers.
func (e *Engine) SetClusterCount(k int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setClusterCount(context.Background(), k)
}

func (e *Engine) setClusterCount(ctx context.Context, k int) {
	start := time.Now()
	e.eng.SetClusterCount(k)
	e.recordSeed(ctx, start)
}

// InitializeCenters re-seeds the centers (K-Means++ or random points, or
// uniform in [0,1)^dim without points) and resets all mixture parameters.
func (e *Engine) InitializeCenters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	start := time.Now()
	e.eng.InitializeCenters()
	e.recordSeed(context.Background(), start)
}

func (e *Engine) recordSeed(ctx context.Context, start time.Time) {
	k, n := e.eng.ClusterCount(), e.eng.Len()
	e.metrics.RecordSeed(k, n, time.Since(start))
	e.logger.LogSeed(ctx, k, n, e.eng.Config().PlusPlus)
}

// Update performs one step of the configured strategy. first must be true
// for the first call after seeding.
func (e *Engine) Update(first bool) UpdateStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.update(context.Background(), first)
}

func (e *Engine) update(ctx context.Context, first bool) UpdateStats {
	start := time.Now()
	stats := e.eng.Update(first)
	mode := e.eng.Config().Mode
	e.metrics.RecordUpdate(mode.String(), stats.Sweeps, time.Since(start))
	e.logger.LogUpdate(ctx, mode, first, stats)
	if mode == ModeGMM && e.eng.Len() > 0 && e.eng.Dim() < 2 && !e.gmmDimWarned {
		e.gmmDimWarned = true
		e.logger.WarnContext(ctx, "gmm needs at least two dimensions, covariances are singular",
			"dim", e.eng.Dim(),
		)
	}
	return stats
}

// Test returns the responsibilities of sample without changing state: a
// one-hot vector in hard mode, normalized kernel weights in soft mode and
// the mixture posterior in GMM mode. The result has ClusterCount entries.
func (e *Engine) Test(sample []float64) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	start := time.Now()
	r := e.eng.Test(sample)
	e.metrics.RecordTest(time.Since(start))
	return r
}

// CheckDim reports an *ErrDimensionMismatch when sample does not match the
// dimensionality of the point set.
func (e *Engine) CheckDim(sample []float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if dim := e.eng.Dim(); len(sample) != dim {
		return &ErrDimensionMismatch{Expected: dim, Actual: len(sample)}
	}
	return nil
}

// Mean returns a copy of center i, or nil when i is out of range.
func (e *Engine) Mean(i int) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Mean(i)
}

// Means returns a copy of all centers.
func (e *Engine) Means() [][]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Means()
}

// Priors returns the mixture weights.
func (e *Engine) Priors() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Priors()
}

// Covariances returns the per-cluster covariances.
func (e *Engine) Covariances() []Cov2 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Covariances()
}

// ClosestPointIndices returns, per cluster, the index of the point nearest
// to its center after the last Update (-1 when unknown).
func (e *Engine) ClosestPointIndices() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.ClosestPointIndices()
}

// Responsibilities returns a copy of the per-point responsibility rows.
func (e *Engine) Responsibilities() [][]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Responsibilities()
}

// Assignments returns the per-point cluster with the highest
// responsibility (-1 before the first Update).
func (e *Engine) Assignments() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.Assignments()
}

// Members returns the indices of the points assigned to cluster k.
func (e *Engine) Members(k int) *roaring.Bitmap {
	e.mu.Lock()
	defer e.mu.Unlock()

	bm := roaring.New()
	for i, c := range e.eng.Assignments() {
		if c == k {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// SSE returns the within-cluster sum of squared Euclidean distances.
func (e *Engine) SSE() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.eng.SSE()
}
