package clusterkit

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clusterkit/blobstore"
)

var (
	// ErrInvalidRestarts is returned by BestOf when restarts is not positive.
	ErrInvalidRestarts = errors.New("restarts must be positive")
	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = blobstore.ErrNotFound
	// ErrUnknownMode is returned when a snapshot names an unsupported mode.
	ErrUnknownMode = errors.New("unknown clustering mode")
)

// ErrDimensionMismatch indicates a sample whose dimensionality differs from
// the engine's points.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
