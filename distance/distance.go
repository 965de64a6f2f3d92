package distance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch indicates two points of different lengths were compared.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Func is a function type for distance calculation.
type Func func(p, q []float64) (float64, error)

// Euclidean returns the L2 distance between p and q.
func Euclidean(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, &ErrDimensionMismatch{Expected: len(p), Actual: len(q)}
	}
	if len(p) == 0 {
		return 0, nil
	}
	return floats.Distance(p, q, 2), nil
}

// SquaredEuclidean returns the squared L2 distance between p and q.
func SquaredEuclidean(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, &ErrDimensionMismatch{Expected: len(p), Actual: len(q)}
	}
	var sum float64
	for i := range p {
		d := p[i] - q[i]
		sum += d * d
	}
	return sum, nil
}

// CheckDimension verifies that v has exactly dim components.
func CheckDimension(v []float64, dim int) error {
	if len(v) != dim {
		return &ErrDimensionMismatch{Expected: dim, Actual: len(v)}
	}
	return nil
}

// IsFinite reports whether every component of v is neither NaN nor infinite.
func IsFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
