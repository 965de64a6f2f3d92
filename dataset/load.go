package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/snapmeans/blobstore"
	"github.com/hupe1980/snapmeans/distance"
	"github.com/hupe1980/snapmeans/resource"
)

// ErrNoRecords is returned when an input contains no data rows.
var ErrNoRecords = errors.New("dataset: no records")

// LoadOptions configures how delimited records become numeric points.
type LoadOptions struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune

	// Header marks the first record as column names.
	Header bool

	// SkipColumns drops identifier columns by header name.
	SkipColumns []string

	// SkipIndices drops columns by zero-based position.
	SkipIndices []int

	// Categories maps non-numeric tokens to numbers (e.g. "Male": 0).
	Categories map[string]float64

	// Controller throttles reads when set. Only used by Open.
	Controller *resource.Controller
}

// Table is a loaded dataset together with the names of its kept columns.
type Table struct {
	Columns []string
	Rows    Dataset
}

// ErrParse reports a field that could not be turned into a number.
type ErrParse struct {
	Line   int
	Column string
	Token  string
	Err    error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("line %d, column %q: cannot parse %q: %v", e.Line, e.Column, e.Token, e.Err)
}

func (e *ErrParse) Unwrap() error { return e.Err }

// Load reads delimited records from r.
//
// Every record must have the same number of fields as the first one; a
// record that does not fails with an error wrapping
// *distance.ErrDimensionMismatch.
func Load(r io.Reader, opts LoadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	var (
		table  Table
		keep   []int
		width  = -1
		lineNo int
	)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read: %w", err)
		}
		lineNo++

		if width < 0 {
			width = len(rec)
			names := make([]string, width)
			if opts.Header {
				copy(names, rec)
			} else {
				for i := range names {
					names[i] = strconv.Itoa(i)
				}
			}
			for i, name := range names {
				if slices.Contains(opts.SkipIndices, i) || slices.Contains(opts.SkipColumns, name) {
					continue
				}
				keep = append(keep, i)
				table.Columns = append(table.Columns, name)
			}
			if opts.Header {
				continue
			}
		}

		if len(rec) != width {
			return nil, fmt.Errorf("dataset: line %d: %w", lineNo,
				&distance.ErrDimensionMismatch{Expected: width, Actual: len(rec)})
		}

		row := make([]float64, len(keep))
		for j, idx := range keep {
			v, err := parseField(rec[idx], opts.Categories)
			if err != nil {
				return nil, &ErrParse{Line: lineNo, Column: table.Columns[j], Token: rec[idx], Err: err}
			}
			row[j] = v
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, ErrNoRecords
	}
	return &table, nil
}

func parseField(tok string, categories map[string]float64) (float64, error) {
	tok = strings.TrimSpace(tok)
	if v, ok := categories[tok]; ok {
		return v, nil
	}
	return strconv.ParseFloat(tok, 64)
}

// Open loads a dataset blob from store, decompressing by file extension.
func Open(ctx context.Context, store blobstore.Store, name string, opts LoadOptions) (*Table, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", name, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if opts.Controller != nil {
		r = resource.NewRateLimitedReader(ctx, r, opts.Controller)
	}

	dr, err := Decompress(name, r)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", name, err)
	}
	defer dr.Close()

	table, err := Load(dr, opts)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", name, err)
	}
	return table, nil
}
