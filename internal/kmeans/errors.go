package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is matched by every *ErrInvalidClusterCount.
	ErrInvalidK = errors.New("invalid cluster count")

	// ErrEmptyCluster is matched by every *ErrDegenerateCluster.
	ErrEmptyCluster = errors.New("empty cluster")

	// ErrInvalidInitialIndices is returned for an unusable explicit start.
	ErrInvalidInitialIndices = errors.New("invalid initial indices")
)

// ErrInvalidClusterCount reports k <= 0 or k > n.
type ErrInvalidClusterCount struct {
	K int
	N int
}

func (e *ErrInvalidClusterCount) Error() string {
	return fmt.Sprintf("invalid cluster count: k=%d with %d records", e.K, e.N)
}

func (e *ErrInvalidClusterCount) Is(target error) bool { return target == ErrInvalidK }

// ErrDegenerateCluster reports a cluster that received no records.
type ErrDegenerateCluster struct {
	Cluster   int
	Iteration int
}

func (e *ErrDegenerateCluster) Error() string {
	return fmt.Sprintf("cluster %d is empty at iteration %d", e.Cluster, e.Iteration)
}

func (e *ErrDegenerateCluster) Is(target error) bool { return target == ErrEmptyCluster }
