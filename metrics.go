package clusterkit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSeed is called after each center initialization.
	RecordSeed(k, points int, duration time.Duration)

	// RecordUpdate is called after each Update. sweeps is the number of
	// Lloyd sweeps (hard mode only).
	RecordUpdate(mode string, sweeps int, duration time.Duration)

	// RecordTest is called after each Test.
	RecordTest(duration time.Duration)

	// RecordSnapshot is called after each Save ("save") or Load ("load").
	RecordSnapshot(op string, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSeed(int, int, time.Duration)                {}
func (NoopMetricsCollector) RecordUpdate(string, int, time.Duration)           {}
func (NoopMetricsCollector) RecordTest(time.Duration)                          {}
func (NoopMetricsCollector) RecordSnapshot(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	SeedCount        atomic.Int64
	UpdateCount      atomic.Int64
	UpdateSweeps     atomic.Int64
	UpdateTotalNanos atomic.Int64
	HardUpdates      atomic.Int64
	SoftUpdates      atomic.Int64
	GMMUpdates       atomic.Int64
	TestCount        atomic.Int64
	TestTotalNanos   atomic.Int64
	SnapshotSaves    atomic.Int64
	SnapshotLoads    atomic.Int64
	SnapshotBytes    atomic.Int64
	SnapshotErrors   atomic.Int64
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed(int, int, time.Duration) {
	b.SeedCount.Add(1)
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(mode string, sweeps int, duration time.Duration) {
	b.UpdateCount.Add(1)
	b.UpdateSweeps.Add(int64(sweeps))
	b.UpdateTotalNanos.Add(duration.Nanoseconds())
	switch mode {
	case ModeSoft.String():
		b.SoftUpdates.Add(1)
	case ModeGMM.String():
		b.GMMUpdates.Add(1)
	default:
		b.HardUpdates.Add(1)
	}
}

// RecordTest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTest(duration time.Duration) {
	b.TestCount.Add(1)
	b.TestTotalNanos.Add(duration.Nanoseconds())
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(op string, bytes int, _ time.Duration, err error) {
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	if op == "load" {
		b.SnapshotLoads.Add(1)
	} else {
		b.SnapshotSaves.Add(1)
	}
	b.SnapshotBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		SeedCount:      b.SeedCount.Load(),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateSweeps:   b.UpdateSweeps.Load(),
		HardUpdates:    b.HardUpdates.Load(),
		SoftUpdates:    b.SoftUpdates.Load(),
		GMMUpdates:     b.GMMUpdates.Load(),
		TestCount:      b.TestCount.Load(),
		SnapshotSaves:  b.SnapshotSaves.Load(),
		SnapshotLoads:  b.SnapshotLoads.Load(),
		SnapshotBytes:  b.SnapshotBytes.Load(),
		SnapshotErrors: b.SnapshotErrors.Load(),
	}
	if s.UpdateCount > 0 {
		s.UpdateAvgNanos = b.UpdateTotalNanos.Load() / s.UpdateCount
	}
	if s.TestCount > 0 {
		s.TestAvgNanos = b.TestTotalNanos.Load() / s.TestCount
	}
	return s
}

// BasicMetricsStats is a point-in-time snapshot of metrics.
type BasicMetricsStats struct {
	SeedCount      int64
	UpdateCount    int64
	UpdateSweeps   int64
	UpdateAvgNanos int64
	HardUpdates    int64
	SoftUpdates    int64
	GMMUpdates     int64
	TestCount      int64
	TestAvgNanos   int64
	SnapshotSaves  int64
	SnapshotLoads  int64
	SnapshotBytes  int64
	SnapshotErrors int64
}
