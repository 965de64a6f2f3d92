package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/snapmeans"
	"github.com/hupe1980/snapmeans/blobstore"
	"github.com/hupe1980/snapmeans/codec"
)

func fourPoints() [][]float64 {
	return [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
}

func TestFromResult(t *testing.T) {
	data := fourPoints()
	res, err := snapmeans.Cluster(context.Background(), data, 2, snapmeans.WithInitialIndices(0, 2))
	require.NoError(t, err)

	rep := FromResult(data, res, WithInput("points.csv"), WithColumns([]string{"x", "y"}))
	assert.Equal(t, Version, rep.Version)
	assert.Equal(t, 4, rep.Records)
	assert.Equal(t, 2, rep.Dimensions)
	assert.Equal(t, "points.csv", rep.Input)
	require.Len(t, rep.Clusters, 1)

	kr := rep.Clusters[0]
	assert.Equal(t, 2, kr.K)
	assert.Equal(t, 1, kr.Restarts)
	assert.Equal(t, 2.0, kr.MeanSSE)
	assert.Equal(t, "converged", kr.Best.State)
	assert.Equal(t, []int{2, 2}, kr.Best.Sizes)
	assert.Equal(t, [][]float64{{0, 0}, {10, 10}}, kr.Best.Centroids)
}

func TestWriteRead(t *testing.T) {
	data := fourPoints()
	results, err := snapmeans.Sweep(context.Background(), data, []int{1, 2}, 3, snapmeans.WithBaseSeed(5))
	require.NoError(t, err)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rep := FromSweep(data, results, WithCreatedAt(created))

	for _, name := range []string{"report.json", "report.json.zst", "report.json.gz", "report.json.lz4"} {
		for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
			t.Run(name+"/"+c.Name(), func(t *testing.T) {
				store := blobstore.NewMemoryStore()
				require.NoError(t, Write(context.Background(), store, name, c, rep))

				got, err := Read(context.Background(), store, name, c)
				require.NoError(t, err)
				assert.Equal(t, rep, got)
			})
		}
	}
}

func TestRead_Errors(t *testing.T) {
	store := blobstore.NewMemoryStore()

	_, err := Read(context.Background(), store, "missing.json", nil)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(context.Background(), "v0.json", []byte(`{"version":0}`)))
	_, err = Read(context.Background(), store, "v0.json", nil)
	assert.ErrorContains(t, err, "unsupported version")
}

func TestText(t *testing.T) {
	data := fourPoints()
	res, err := snapmeans.Cluster(context.Background(), data, 2, snapmeans.WithInitialIndices(0, 2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, FromResult(data, res)))

	out := buf.String()
	assert.Contains(t, out, "MEAN SSE")
	assert.Contains(t, out, "converged")
	assert.Contains(t, out, "k=2 best centroids:")
	assert.Contains(t, out, "record 2  size 2  [10 10]")
}
