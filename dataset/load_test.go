package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hupe1980/snapmeans/blobstore"
	"github.com/hupe1980/snapmeans/distance"
	"github.com/hupe1980/snapmeans/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mallCustomers = `CustomerID,Genre,Age,Annual Income (k$),Spending Score (1-100)
1,Male,19,15,39
2,Male,21,15,81
3,Female,20,16,6
4,Female,23,16,77
`

func mallOptions() LoadOptions {
	return LoadOptions{
		Header:      true,
		SkipColumns: []string{"CustomerID"},
		Categories:  map[string]float64{"Male": 0, "Female": 1},
	}
}

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(mallCustomers), mallOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Genre", "Age", "Annual Income (k$)", "Spending Score (1-100)"}, table.Columns)
	assert.Equal(t, Dataset{
		{0, 19, 15, 39},
		{0, 21, 15, 81},
		{1, 20, 16, 6},
		{1, 23, 16, 77},
	}, table.Rows)
}

func TestLoad_NoHeader(t *testing.T) {
	table, err := Load(strings.NewReader("1;2.5;3\n4;5;6\n"), LoadOptions{
		Delimiter:   ';',
		SkipIndices: []int{0},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, table.Columns)
	assert.Equal(t, Dataset{{2.5, 3}, {5, 6}}, table.Rows)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Ragged", func(t *testing.T) {
		_, err := Load(strings.NewReader("1,2\n3,4,5\n"), LoadOptions{})
		var dm *distance.ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 3, dm.Actual)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		_, err := Load(strings.NewReader("a,b\n1,Other\n"), LoadOptions{Header: true})
		var pe *ErrParse
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 2, pe.Line)
		assert.Equal(t, "b", pe.Column)
		assert.Equal(t, "Other", pe.Token)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Load(strings.NewReader("a,b\n"), LoadOptions{Header: true})
		assert.ErrorIs(t, err, ErrNoRecords)
	})
}

func TestOpen_Compressed(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	cases := map[string]Compression{
		"mall.csv":     CompressionNone,
		"mall.csv.zst": CompressionZstd,
		"mall.csv.gz":  CompressionGzip,
		"mall.csv.lz4": CompressionLZ4,
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c, CompressionFor(name))

			data, err := Compress(c, []byte(mallCustomers))
			require.NoError(t, err)
			require.NoError(t, store.Put(ctx, name, data))

			opts := mallOptions()
			opts.Controller = resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})

			table, err := Open(ctx, store, name, opts)
			require.NoError(t, err)
			assert.Len(t, table.Rows, 4)
			assert.Equal(t, []float64{1, 23, 16, 77}, table.Rows[3])
		})
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open(context.Background(), blobstore.NewMemoryStore(), "nope.csv", LoadOptions{})
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))
}
