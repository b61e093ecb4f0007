package clusterkit

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/hupe1980/clusterkit/codec"
	"github.com/hupe1980/clusterkit/internal/kmeans"
	"github.com/hupe1980/clusterkit/snapshot"
)

type options struct {
	config           kmeans.Config
	seed             int64
	rng              *rand.Rand
	metricsCollector MetricsCollector
	logger           *Logger
	codec            codec.Codec
	compression      snapshot.Compression
}

// Option configures an Engine.
type Option func(*options)

// WithMode selects the clustering strategy. Default: ModeHard.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.config.Mode = m
	}
}

// WithBeta sets the soft-mode stiffness. Non-positive values become MinBeta.
func WithBeta(beta float64) Option {
	return func(o *options) {
		o.config.Beta = beta
	}
}

// WithPower selects the hard-mode metric: 0 = Chebyshev, 1 = Manhattan,
// 2 = squared Euclidean, p > 2 = sum of |d|^p without the root.
func WithPower(power int) Option {
	return func(o *options) {
		o.config.Power = power
	}
}

// WithPlusPlus toggles K-Means++ seeding. Default: enabled.
func WithPlusPlus(on bool) Option {
	return func(o *options) {
		o.config.PlusPlus = on
	}
}

// WithMaxSweeps bounds the Lloyd sweeps of one hard-mode Update.
func WithMaxSweeps(n int) Option {
	return func(o *options) {
		o.config.MaxSweeps = n
	}
}

// WithConfig replaces the whole strategy configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithSeed seeds the engine's random source for reproducible runs.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.rng = nil
	}
}

// WithRand sets the engine's random source. The engine takes ownership;
// the source must not be shared.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithMetricsCollector configures metrics collection.
//
// Example:
//
//	metrics := &clusterkit.BasicMetricsCollector{}
//	eng := clusterkit.New(3, clusterkit.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Updates: %d, Avg latency: %dns\n", stats.UpdateCount, stats.UpdateAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := clusterkit.NewJSONLogger(slog.LevelInfo)
//	eng := clusterkit.New(3, clusterkit.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCodec configures the codec used for snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures snapshot payload compression. Default: zstd.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		config:           kmeans.DefaultConfig(),
		seed:             time.Now().UnixNano(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		codec:            codec.Default,
		compression:      snapshot.CompressionZSTD,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(o.seed))
	}
	return o
}
