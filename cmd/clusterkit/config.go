package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration. It is read from an optional YAML file;
// flags given on the command line override the file.
//
// Example:
//
//	mode: gmm
//	k: 3
//	restarts: 8
//	snapshot:
//	  name: runs/
//	  compression: zstd
//	store:
//	  kind: s3
//	  bucket: my-models
//	  prefix: clusterkit
type Config struct {
	Mode      string  `yaml:"mode"`
	K         int     `yaml:"k"`
	Beta      float64 `yaml:"beta"`
	Power     int     `yaml:"power"`
	PlusPlus  bool    `yaml:"plus_plus"`
	MaxSweeps int     `yaml:"max_sweeps"`
	Seed      int64   `yaml:"seed"`

	Restarts    int     `yaml:"restarts"`
	Concurrency int     `yaml:"concurrency"`
	MaxSteps    int     `yaml:"max_steps"`
	Tolerance   float64 `yaml:"tolerance"`
	FPS         float64 `yaml:"fps"`

	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`

	Snapshot SnapshotConfig `yaml:"snapshot"`
	Store    StoreConfig    `yaml:"store"`
}

// SnapshotConfig controls where and how models are persisted.
type SnapshotConfig struct {
	// Name of the snapshot blob. A name ending in "/" gets a generated
	// file name appended.
	Name        string `yaml:"name"`
	Codec       string `yaml:"codec"`
	Compression string `yaml:"compression"`
}

// StoreConfig selects the blob store.
type StoreConfig struct {
	// Kind is one of local, s3 or minio.
	Kind     string `yaml:"kind"`
	Root     string `yaml:"root"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	// Table enables the DynamoDB snapshot catalog on S3.
	Table     string `yaml:"table"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// DefaultConfig returns the configuration used when neither a file nor
// flags set a value.
func DefaultConfig() *Config {
	return &Config{
		Mode:      "hard",
		K:         3,
		Beta:      1,
		Power:     2,
		PlusPlus:  true,
		MaxSweeps: 1000,
		Restarts:  1,
		MaxSteps:  100,
		Tolerance: 1e-9,
		Output:    "text",
		LogLevel:  "warn",
		Snapshot: SnapshotConfig{
			Codec:       "go-json",
			Compression: "zstd",
		},
		Store: StoreConfig{
			Kind: "local",
			Root: ".",
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

func addEngineFlags(cmd *cobra.Command) {
	d := DefaultConfig()
	cmd.Flags().String("mode", d.Mode, "Clustering mode: hard, soft or gmm")
	cmd.Flags().Int("k", d.K, "Number of clusters")
	cmd.Flags().Float64("beta", d.Beta, "Soft k-means stiffness")
	cmd.Flags().Int("power", d.Power, "Hard k-means metric: 0 = L-inf, 1 = L1, 2 = L2, p>2 = sum |d|^p")
	cmd.Flags().Bool("plus-plus", d.PlusPlus, "Seed centers with k-means++")
	cmd.Flags().Int("max-sweeps", d.MaxSweeps, "Bound on assignment sweeps per hard update")
	cmd.Flags().Int64("seed", d.Seed, "Random seed (0 = time based)")
	cmd.Flags().Int("restarts", d.Restarts, "Independent restarts; the lowest SSE wins")
	cmd.Flags().Int("concurrency", d.Concurrency, "Restarts running at once (0 = GOMAXPROCS)")
	cmd.Flags().Int("max-steps", d.MaxSteps, "Maximum update steps per run")
	cmd.Flags().Float64("tolerance", d.Tolerance, "Center shift below which a run has converged")
	cmd.Flags().Float64("fps", d.FPS, "Pace updates to this many steps per second (0 = unpaced)")
	cmd.Flags().String("codec", d.Snapshot.Codec, "Snapshot payload codec: json or go-json")
	cmd.Flags().String("compression", d.Snapshot.Compression, "Snapshot compression: none, lz4 or zstd")
}

func addCommonFlags(cmd *cobra.Command) {
	d := DefaultConfig()
	cmd.Flags().String("config", "", "YAML configuration file")
	cmd.Flags().StringP("output", "o", d.Output, "Output format: text or json")
	cmd.Flags().String("log-level", d.LogLevel, "Log level: debug, info, warn or error")
	cmd.Flags().String("snapshot", d.Snapshot.Name, "Snapshot name in the store")
	cmd.Flags().String("store", d.Store.Kind, "Blob store: local, s3 or minio")
	cmd.Flags().String("root", d.Store.Root, "Directory of the local store")
	cmd.Flags().String("bucket", "", "Bucket for s3 and minio stores")
	cmd.Flags().String("prefix", "", "Key prefix inside the bucket")
	cmd.Flags().String("endpoint", "", "Custom S3 endpoint or minio host:port")
	cmd.Flags().String("region", "", "AWS region")
	cmd.Flags().String("table", "", "DynamoDB table tracking the latest snapshot (s3 only)")
	cmd.Flags().Bool("secure", false, "Use TLS for minio")
}

// loadCommandConfig reads --config and applies every flag set explicitly.
func loadCommandConfig(cmd *cobra.Command) (*Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			apply()
		}
	}
	set("mode", func() { cfg.Mode, _ = fs.GetString("mode") })
	set("k", func() { cfg.K, _ = fs.GetInt("k") })
	set("beta", func() { cfg.Beta, _ = fs.GetFloat64("beta") })
	set("power", func() { cfg.Power, _ = fs.GetInt("power") })
	set("plus-plus", func() { cfg.PlusPlus, _ = fs.GetBool("plus-plus") })
	set("max-sweeps", func() { cfg.MaxSweeps, _ = fs.GetInt("max-sweeps") })
	set("seed", func() { cfg.Seed, _ = fs.GetInt64("seed") })
	set("restarts", func() { cfg.Restarts, _ = fs.GetInt("restarts") })
	set("concurrency", func() { cfg.Concurrency, _ = fs.GetInt("concurrency") })
	set("max-steps", func() { cfg.MaxSteps, _ = fs.GetInt("max-steps") })
	set("tolerance", func() { cfg.Tolerance, _ = fs.GetFloat64("tolerance") })
	set("fps", func() { cfg.FPS, _ = fs.GetFloat64("fps") })
	set("codec", func() { cfg.Snapshot.Codec, _ = fs.GetString("codec") })
	set("compression", func() { cfg.Snapshot.Compression, _ = fs.GetString("compression") })
	set("output", func() { cfg.Output, _ = fs.GetString("output") })
	set("log-level", func() { cfg.LogLevel, _ = fs.GetString("log-level") })
	set("snapshot", func() { cfg.Snapshot.Name, _ = fs.GetString("snapshot") })
	set("store", func() { cfg.Store.Kind, _ = fs.GetString("store") })
	set("root", func() { cfg.Store.Root, _ = fs.GetString("root") })
	set("bucket", func() { cfg.Store.Bucket, _ = fs.GetString("bucket") })
	set("prefix", func() { cfg.Store.Prefix, _ = fs.GetString("prefix") })
	set("endpoint", func() { cfg.Store.Endpoint, _ = fs.GetString("endpoint") })
	set("region", func() { cfg.Store.Region, _ = fs.GetString("region") })
	set("table", func() { cfg.Store.Table, _ = fs.GetString("table") })
	set("secure", func() { cfg.Store.Secure, _ = fs.GetBool("secure") })

	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("invalid output format %q", cfg.Output)
	}
	return cfg, nil
}
