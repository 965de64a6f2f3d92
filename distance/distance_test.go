package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		p, q     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 5},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Negative", []float64{-1, -1}, []float64{1, 1}, math.Sqrt(8)},
		{"Empty", []float64{}, []float64{}, 0},
		{"Single", []float64{2}, []float64{-3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Euclidean(tt.p, tt.q)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestSquaredEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		p, q     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SquaredEuclidean(tt.p, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEuclideanProperties(t *testing.T) {
	points := [][]float64{
		{0, 0, 0},
		{1, 2, 3},
		{-4.5, 0.25, 10},
		{1e-9, -1e9, 3.14159},
	}

	for i, p := range points {
		self, err := Euclidean(p, p)
		require.NoError(t, err)
		assert.Equal(t, 0.0, self, "distance(p, p) for point %d", i)

		for j, q := range points {
			pq, err := Euclidean(p, q)
			require.NoError(t, err)
			qp, err := Euclidean(q, p)
			require.NoError(t, err)
			assert.Equal(t, pq, qp, "symmetry for points %d and %d", i, j)
			assert.GreaterOrEqual(t, pq, 0.0)
		}
	}
}

func TestDimensionMismatch(t *testing.T) {
	fns := map[string]Func{
		"Euclidean":        Euclidean,
		"SquaredEuclidean": SquaredEuclidean,
	}

	for name, fn := range fns {
		t.Run(name, func(t *testing.T) {
			got, err := fn([]float64{1, 2, 3}, []float64{1, 2})
			require.Error(t, err)
			assert.Zero(t, got)

			var dm *ErrDimensionMismatch
			require.ErrorAs(t, err, &dm)
			assert.Equal(t, 3, dm.Expected)
			assert.Equal(t, 2, dm.Actual)
			assert.Equal(t, "dimension mismatch: expected 3, got 2", err.Error())
		})
	}
}

func TestCheckDimension(t *testing.T) {
	assert.NoError(t, CheckDimension([]float64{1, 2}, 2))

	err := CheckDimension([]float64{1}, 2)
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 1, dm.Actual)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite([]float64{0, 1, -1}))
	assert.True(t, IsFinite(nil))
	assert.False(t, IsFinite([]float64{0, math.NaN()}))
	assert.False(t, IsFinite([]float64{math.Inf(-1)}))
}
