package kmeans

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// Intner is the random source the initializer draws from.
type Intner interface {
	Intn(n int) int
}

// MaxRecords is the largest dataset the index bitmaps can address.
const MaxRecords = math.MaxUint32

// Initialize draws k distinct record indices uniformly at random from n
// records. Index i of the result seeds cluster i.
func Initialize(n, k int, rng Intner) ([]int, error) {
	if k <= 0 || k > n {
		return nil, &ErrInvalidClusterCount{K: k, N: n}
	}
	if uint64(n) > MaxRecords {
		return nil, fmt.Errorf("kmeans: %d records exceed the limit of %d", n, MaxRecords)
	}

	taken := roaring.New()
	indices := make([]int, 0, k)
	for len(indices) < k {
		idx := rng.Intn(n)
		if taken.CheckedAdd(uint32(idx)) {
			indices = append(indices, idx)
		}
	}
	return indices, nil
}

// CheckIndices validates an explicit set of starting records.
func CheckIndices(indices []int, n, k int) error {
	if k <= 0 || k > n {
		return &ErrInvalidClusterCount{K: k, N: n}
	}
	if len(indices) != k {
		return fmt.Errorf("%w: got %d indices for k=%d", ErrInvalidInitialIndices, len(indices), k)
	}

	taken := roaring.New()
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidInitialIndices, idx, n)
		}
		if !taken.CheckedAdd(uint32(idx)) {
			return fmt.Errorf("%w: index %d repeated", ErrInvalidInitialIndices, idx)
		}
	}
	return nil
}
