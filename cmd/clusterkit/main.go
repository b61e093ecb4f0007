// Package main provides the clusterkit CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/clusterkit"
	"github.com/hupe1980/clusterkit/codec"
	"github.com/hupe1980/clusterkit/snapshot"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clusterkit",
		Short: "K-Means, soft K-Means and Gaussian mixture clustering",
		Long: `clusterkit clusters points read from CSV files.

Modes:
  hard  Lloyd's k-means with L-inf, L1, L2 or power metrics
  soft  soft k-means with an exp(-beta*d) kernel
  gmm   EM for a mixture of 2-D Gaussians

Trained models are saved as snapshots to a local directory, S3 or MinIO.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clusterkit v%s (%s)\n", version, commit)
		},
	})

	runCmd := &cobra.Command{
		Use:   "run [points.csv|-]",
		Short: "Cluster the points of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	addCommonFlags(runCmd)
	addEngineFlags(runCmd)
	runCmd.Flags().Bool("assignments", false, "Print the cluster of every point")
	rootCmd.AddCommand(runCmd)

	testCmd := &cobra.Command{
		Use:   "test [samples.csv|-]",
		Short: "Print cluster responsibilities of samples under a saved model",
		Args:  cobra.ExactArgs(1),
		RunE:  runTest,
	}
	addCommonFlags(testCmd)
	rootCmd.AddCommand(testCmd)

	return rootCmd
}

func newLogger(cfg *Config) (*clusterkit.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return clusterkit.NewTextLogger(level), nil
}

func engineOptions(cfg *Config, logger *clusterkit.Logger) ([]clusterkit.Option, error) {
	mode, ok := clusterkit.ParseMode(cfg.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", clusterkit.ErrUnknownMode, cfg.Mode)
	}
	c, ok := codec.ByName(cfg.Snapshot.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", snapshot.ErrUnknownCodec, cfg.Snapshot.Codec)
	}
	comp, err := snapshot.ParseCompression(cfg.Snapshot.Compression)
	if err != nil {
		return nil, err
	}

	opts := []clusterkit.Option{
		clusterkit.WithMode(mode),
		clusterkit.WithBeta(cfg.Beta),
		clusterkit.WithPower(cfg.Power),
		clusterkit.WithPlusPlus(cfg.PlusPlus),
		clusterkit.WithMaxSweeps(cfg.MaxSweeps),
		clusterkit.WithCodec(c),
		clusterkit.WithCompression(comp),
		clusterkit.WithLogger(logger),
	}
	if cfg.Seed != 0 {
		opts = append(opts, clusterkit.WithSeed(cfg.Seed))
	}
	return opts, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	opts, err := engineOptions(cfg, logger)
	if err != nil {
		return err
	}

	points, err := readPointsFile(args[0], cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading points: %w", err)
	}

	runOpts := clusterkit.RunOptions{
		MaxSteps:        cfg.MaxSteps,
		Tolerance:       cfg.Tolerance,
		FramesPerSecond: cfg.FPS,
	}
	if cfg.FPS > 0 {
		stderr := cmd.ErrOrStderr()
		runOpts.OnStep = func(s clusterkit.StepInfo) {
			fmt.Fprintf(stderr, "step %d: shift=%s changed=%d\n", s.Step, formatFloat(s.Shift), s.Stats.Changed)
		}
	}

	report := &runReport{Restarts: max(cfg.Restarts, 1)}
	var eng *clusterkit.Engine
	if cfg.Restarts > 1 {
		eng, err = clusterkit.BestOfWithOptions(ctx, points, cfg.K, cfg.Restarts, clusterkit.BestOfOptions{
			Run:         runOpts,
			Concurrency: cfg.Concurrency,
		}, opts...)
		if err != nil {
			return err
		}
	} else {
		eng = clusterkit.New(cfg.K, opts...)
		eng.AddPoints(points)
		eng.InitializeCenters()

		res, err := eng.Run(ctx, runOpts)
		if err != nil {
			return err
		}
		report.RunID = res.RunID
		report.Steps = res.Steps
		report.Converged = res.Converged
	}

	report.Mode = eng.Mode().String()
	report.K = eng.ClusterCount()
	report.Points = eng.Len()
	report.SSE = eng.SSE()
	report.Means = eng.Means()
	report.Priors = eng.Priors()
	for k := range report.K {
		report.Sizes = append(report.Sizes, eng.Members(k).GetCardinality())
	}
	if assignments, _ := cmd.Flags().GetBool("assignments"); assignments {
		report.Assignments = eng.Assignments()
	}

	if name := cfg.Snapshot.Name; name != "" {
		if strings.HasSuffix(name, "/") {
			name += uuid.NewString() + ".cks"
		}
		store, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		if err := eng.Save(ctx, store, name); err != nil {
			return err
		}
		report.Snapshot = name
	}

	if cfg.Output == "json" {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return writeRunText(cmd.OutOrStdout(), report)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Snapshot.Name == "" {
		return fmt.Errorf("--snapshot is required")
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	samples, err := readPointsFile(args[0], cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading samples: %w", err)
	}
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	eng, err := clusterkit.Load(ctx, store, cfg.Snapshot.Name, clusterkit.WithLogger(logger))
	if err != nil {
		return err
	}

	reports := make([]testReport, 0, len(samples))
	for i, s := range samples {
		if err := eng.CheckDim(s); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		r := eng.Test(s)
		cluster := -1
		if len(r) > 0 {
			cluster = floats.MaxIdx(r)
		}
		reports = append(reports, testReport{Sample: s, Cluster: cluster, Responsibilities: r})
	}

	if cfg.Output == "json" {
		return writeJSON(cmd.OutOrStdout(), reports)
	}
	return writeTestText(cmd.OutOrStdout(), reports)
}
