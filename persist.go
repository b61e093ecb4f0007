package clusterkit

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/clusterkit/blobstore"
	"github.com/hupe1980/clusterkit/internal/kmeans"
	"github.com/hupe1980/clusterkit/snapshot"
)

// Snapshot returns the complete engine state as a snapshot model.
func (e *Engine) Snapshot() *snapshot.Model {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() *snapshot.Model {
	s := e.eng.State()
	m := &snapshot.Model{
		Mode:             s.Config.Mode.String(),
		Beta:             s.Config.Beta,
		Power:            s.Config.Power,
		PlusPlus:         s.Config.PlusPlus,
		MaxSweeps:        s.Config.MaxSweeps,
		Dim:              s.Dim,
		K:                s.K,
		Points:           s.Points,
		Means:            s.Means,
		Responsibilities: s.Responsibilities,
		Assignments:      s.Assignments,
		Priors:           s.Priors,
		Meta: map[string]string{
			"created_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if e.lastRunID != "" {
		m.Meta["run_id"] = e.lastRunID
	}
	for _, c := range s.Covariances {
		m.Covariances = append(m.Covariances, [3]float64{c.XX, c.XY, c.YY})
	}
	return m
}

// Restore replaces the engine state with m. Sections whose sizes do not
// match K or the point count are reset instead of trusted.
func (e *Engine) Restore(m *snapshot.Model) error {
	mode, ok := ParseMode(m.Mode)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, m.Mode)
	}
	s := kmeans.State{
		Config: Config{
			Mode:      mode,
			Beta:      m.Beta,
			Power:     m.Power,
			PlusPlus:  m.PlusPlus,
			MaxSweeps: m.MaxSweeps,
		},
		Dim:              m.Dim,
		K:                m.K,
		Points:           m.Points,
		Means:            m.Means,
		Responsibilities: m.Responsibilities,
		Assignments:      m.Assignments,
		Priors:           m.Priors,
	}
	for _, c := range m.Covariances {
		s.Covariances = append(s.Covariances, Cov2{XX: c[0], XY: c[1], YY: c[2]})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.eng.Restore(s)
	e.lastRunID = m.Meta["run_id"]
	return nil
}

// Save writes the engine state as a snapshot named name into store.
func (e *Engine) Save(ctx context.Context, store blobstore.BlobStore, name string) error {
	start := time.Now()

	e.mu.Lock()
	m := e.snapshot()
	e.mu.Unlock()

	data, err := snapshot.Marshal(m, e.codec, e.compression)
	if err == nil {
		err = store.Put(ctx, name, data)
	}
	if err != nil {
		err = fmt.Errorf("save snapshot %q: %w", name, err)
	}
	e.metrics.RecordSnapshot("save", len(data), time.Since(start), err)
	e.logger.LogSnapshot(ctx, "save", name, len(data), time.Since(start), err)
	return err
}

// Load reads the snapshot name from store into a new engine. optFns
// configure logging, metrics, the random source and the codec used by
// later saves; the clustering configuration comes from the snapshot.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Engine, error) {
	start := time.Now()
	e := New(0, optFns...)

	data, err := blobstore.Get(ctx, store, name)
	if err == nil {
		var m *snapshot.Model
		if m, err = snapshot.Unmarshal(data); err == nil {
			err = e.Restore(m)
		}
	}
	if err != nil {
		err = fmt.Errorf("load snapshot %q: %w", name, err)
	}
	e.metrics.RecordSnapshot("load", len(data), time.Since(start), err)
	e.logger.LogSnapshot(ctx, "load", name, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return e, nil
}
