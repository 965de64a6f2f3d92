package dataset

import (
	"fmt"

	"github.com/hupe1980/snapmeans/distance"
	"gonum.org/v1/gonum/floats"
)

// Dataset is an ordered sequence of points sharing one dimensionality.
type Dataset [][]float64

// ErrRaggedRow reports the first row whose length differs from row 0.
type ErrRaggedRow struct {
	Row int
	*distance.ErrDimensionMismatch
}

func (e *ErrRaggedRow) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.ErrDimensionMismatch)
}

func (e *ErrRaggedRow) Unwrap() error { return e.ErrDimensionMismatch }

// Len returns the number of records.
func (d Dataset) Len() int { return len(d) }

// Dim returns the dimensionality of the first record, or 0 if empty.
func (d Dataset) Dim() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0])
}

// Validate checks that every record has the same length as the first.
func (d Dataset) Validate() error {
	dim := d.Dim()
	for i, row := range d {
		if len(row) != dim {
			return &ErrRaggedRow{
				Row:                  i,
				ErrDimensionMismatch: &distance.ErrDimensionMismatch{Expected: dim, Actual: len(row)},
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	for i, row := range d {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Column copies feature j of every record into dst (allocated if too small).
func (d Dataset) Column(dst []float64, j int) []float64 {
	if cap(dst) < len(d) {
		dst = make([]float64, len(d))
	}
	dst = dst[:len(d)]
	for i, row := range d {
		dst[i] = row[j]
	}
	return dst
}

// Bounds holds the observed range of one feature column.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MinMax returns the per-column bounds of a non-empty, uniform dataset.
func MinMax(d Dataset) ([]Bounds, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if len(d) == 0 {
		return nil, nil
	}

	bounds := make([]Bounds, d.Dim())
	col := make([]float64, len(d))
	for j := range bounds {
		col = d.Column(col, j)
		bounds[j] = Bounds{Min: floats.Min(col), Max: floats.Max(col)}
	}
	return bounds, nil
}

// Normalize rescales every column to [0,1] using that column's original
// minimum and maximum. The input is not modified.
//
// A constant column (min == max) maps to 0 for every record.
func Normalize(d Dataset) (Dataset, error) {
	bounds, err := MinMax(d)
	if err != nil {
		return nil, err
	}

	out := make(Dataset, len(d))
	for i, row := range d {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			span := bounds[j].Max - bounds[j].Min
			if span == 0 {
				continue
			}
			out[i][j] = (v - bounds[j].Min) / span
		}
	}
	return out, nil
}
