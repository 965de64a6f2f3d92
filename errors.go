package snapmeans

import (
	"errors"
	"fmt"

	"github.com/hupe1980/snapmeans/dataset"
	"github.com/hupe1980/snapmeans/distance"
	"github.com/hupe1980/snapmeans/internal/kmeans"
)

var (
	// ErrInvalidK is matched by every *ErrInvalidClusterCount.
	ErrInvalidK = kmeans.ErrInvalidK

	// ErrEmptyCluster is matched by every *ErrDegenerateCluster.
	ErrEmptyCluster = kmeans.ErrEmptyCluster

	// ErrInvalidInitialIndices is returned when WithInitialIndices is unusable.
	ErrInvalidInitialIndices = kmeans.ErrInvalidInitialIndices

	// ErrInvalidRestarts is returned by Sweep when restarts is not positive.
	ErrInvalidRestarts = errors.New("restarts must be positive")
)

// ErrDimensionMismatch indicates two points of different lengths were compared.
//
// Index is the offending record when known, -1 otherwise.
// The original underlying error can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Index    int
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("dimension mismatch at record %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
	}
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidClusterCount indicates k <= 0 or k > N.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrInvalidClusterCount struct {
	K     int
	N     int
	cause error
}

func (e *ErrInvalidClusterCount) Error() string {
	return fmt.Sprintf("invalid cluster count: k=%d with %d records", e.K, e.N)
}

func (e *ErrInvalidClusterCount) Unwrap() error { return e.cause }

// ErrDegenerateCluster indicates a cluster received no records while the
// EmptyClusterFail policy was active.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrDegenerateCluster struct {
	Cluster   int
	Iteration int
	cause     error
}

func (e *ErrDegenerateCluster) Error() string {
	return fmt.Sprintf("degenerate cluster %d at iteration %d", e.Cluster, e.Iteration)
}

func (e *ErrDegenerateCluster) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var rr *dataset.ErrRaggedRow
	if errors.As(err, &rr) {
		return &ErrDimensionMismatch{Index: rr.Row, Expected: rr.Expected, Actual: rr.Actual, cause: err}
	}
	var dm *distance.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Index: -1, Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var ick *kmeans.ErrInvalidClusterCount
	if errors.As(err, &ick) {
		return &ErrInvalidClusterCount{K: ick.K, N: ick.N, cause: err}
	}
	var dc *kmeans.ErrDegenerateCluster
	if errors.As(err, &dc) {
		return &ErrDegenerateCluster{Cluster: dc.Cluster, Iteration: dc.Iteration, cause: err}
	}

	return err
}
