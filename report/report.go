// Package report turns clustering results into a persisted, printable form.
//
// Only final results are reported; nothing is written while runs are in
// flight.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/hupe1980/snapmeans"
	"github.com/hupe1980/snapmeans/blobstore"
	"github.com/hupe1980/snapmeans/codec"
	"github.com/hupe1980/snapmeans/dataset"
)

// Version is the schema version of Report.
const Version = 1

// Report summarizes one or more cluster counts.
type Report struct {
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	Input      string    `json:"input,omitempty"`
	Records    int       `json:"records"`
	Dimensions int       `json:"dimensions"`
	Columns    []string  `json:"columns,omitempty"`
	Clusters   []KReport `json:"clusters"`
}

// KReport aggregates the runs of one cluster count.
type KReport struct {
	K        int     `json:"k"`
	Restarts int     `json:"restarts"`
	MeanSSE  float64 `json:"mean_sse"`
	MinSSE   float64 `json:"min_sse"`
	MaxSSE   float64 `json:"max_sse"`
	Best     Run     `json:"best"`
}

// Run describes a single clustering run.
type Run struct {
	Seed            int64       `json:"seed"`
	SSE             float64     `json:"sse"`
	Iterations      int         `json:"iterations"`
	State           string      `json:"state"`
	CentroidIndices []int       `json:"centroid_indices"`
	Centroids       [][]float64 `json:"centroids"`
	Sizes           []int       `json:"sizes"`
	History         []float64   `json:"history"`
	EmptyClusters   int         `json:"empty_clusters"`
}

// Option customizes a report.
type Option func(*Report)

// WithInput records the dataset name.
func WithInput(name string) Option {
	return func(r *Report) {
		r.Input = name
	}
}

// WithColumns records the feature names.
func WithColumns(columns []string) Option {
	return func(r *Report) {
		r.Columns = columns
	}
}

// WithCreatedAt overrides the creation time.
func WithCreatedAt(t time.Time) Option {
	return func(r *Report) {
		r.CreatedAt = t
	}
}

// FromResult reports a single run over data.
func FromResult(data [][]float64, res *snapmeans.Result, opts ...Option) *Report {
	return FromSweep(data, []snapmeans.SweepResult{{
		K:       len(res.CentroidIndices),
		Runs:    []*snapmeans.Result{res},
		Best:    res,
		MeanSSE: res.SSE,
		MinSSE:  res.SSE,
		MaxSSE:  res.SSE,
	}}, opts...)
}

// FromSweep reports every cluster count of a sweep over data, in sweep order.
func FromSweep(data [][]float64, results []snapmeans.SweepResult, opts ...Option) *Report {
	rep := &Report{
		Version:    Version,
		CreatedAt:  time.Now().UTC(),
		Records:    len(data),
		Dimensions: dataset.Dataset(data).Dim(),
		Clusters:   make([]KReport, 0, len(results)),
	}
	for _, sr := range results {
		rep.Clusters = append(rep.Clusters, KReport{
			K:        sr.K,
			Restarts: len(sr.Runs),
			MeanSSE:  sr.MeanSSE,
			MinSSE:   sr.MinSSE,
			MaxSSE:   sr.MaxSSE,
			Best:     newRun(sr.Best),
		})
	}
	for _, opt := range opts {
		opt(rep)
	}
	return rep
}

func newRun(res *snapmeans.Result) Run {
	return Run{
		Seed:            res.Seed,
		SSE:             res.SSE,
		Iterations:      res.Iterations,
		State:           res.State.String(),
		CentroidIndices: res.CentroidIndices,
		Centroids:       res.Centroids,
		Sizes:           res.ClusterSizes(),
		History:         res.History,
		EmptyClusters:   res.EmptyClusters,
	}
}

// Write encodes rep with c and stores it as name. A .zst, .gz or .lz4
// extension compresses the encoded report.
func Write(ctx context.Context, store blobstore.Store, name string, c codec.Codec, rep *Report) error {
	if c == nil {
		c = codec.Default
	}
	b, err := c.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if b, err = dataset.Compress(dataset.CompressionFor(name), b); err != nil {
		return fmt.Errorf("compress report: %w", err)
	}
	if err := store.Put(ctx, name, b); err != nil {
		return fmt.Errorf("store report %s: %w", name, err)
	}
	return nil
}

// Read loads a report previously stored with Write.
func Read(ctx context.Context, store blobstore.Store, name string, c codec.Codec) (*Report, error) {
	if c == nil {
		c = codec.Default
	}
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", name, err)
	}
	defer rc.Close()

	dr, err := dataset.Decompress(name, rc)
	if err != nil {
		return nil, fmt.Errorf("decompress report %s: %w", name, err)
	}
	defer dr.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(dr); err != nil {
		return nil, fmt.Errorf("read report %s: %w", name, err)
	}

	var rep Report
	if err := c.Unmarshal(buf.Bytes(), &rep); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", name, err)
	}
	if rep.Version != Version {
		return nil, fmt.Errorf("report %s: unsupported version %d", name, rep.Version)
	}
	return &rep, nil
}

// Text renders a console summary, one line per cluster count followed by
// the best run's centroids.
func Text(w io.Writer, rep *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "K\tRESTARTS\tMEAN SSE\tMIN SSE\tMAX SSE\tBEST SEED\tITERATIONS\tSTATE\n")
	for _, kr := range rep.Clusters {
		fmt.Fprintf(tw, "%d\t%d\t%.6g\t%.6g\t%.6g\t%d\t%d\t%s\n",
			kr.K, kr.Restarts, kr.MeanSSE, kr.MinSSE, kr.MaxSSE,
			kr.Best.Seed, kr.Best.Iterations, kr.Best.State)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, kr := range rep.Clusters {
		if _, err := fmt.Fprintf(w, "\nk=%d best centroids:\n", kr.K); err != nil {
			return err
		}
		for c, centroid := range kr.Best.Centroids {
			if _, err := fmt.Fprintf(w, "  %d  record %d  size %d  %.4g\n",
				c, kr.Best.CentroidIndices[c], kr.Best.Sizes[c], centroid); err != nil {
				return err
			}
		}
	}
	return nil
}
