package snapmeans

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/snapmeans/resource"
)

// SweepResult aggregates the restarts of one cluster count.
type SweepResult struct {
	K int
	// Runs are ordered by seed.
	Runs []*Result
	// Best is the run with the lowest SSE; the earliest seed wins ties.
	Best    *Result
	MeanSSE float64
	MinSSE  float64
	MaxSSE  float64
}

type sweepOptions struct {
	baseSeed       int64
	hasBaseSeed    bool
	controller     *resource.Controller
	clusterOptions []Option
}

// SweepOption configures a sweep.
type SweepOption func(*sweepOptions)

// WithBaseSeed sets the seed of the first restart. Restart i uses base+i,
// so every k sees the same seeds.
func WithBaseSeed(seed int64) SweepOption {
	return func(o *sweepOptions) {
		o.baseSeed = seed
		o.hasBaseSeed = true
	}
}

// WithController bounds the number of concurrent runs and their working
// memory. Without it runs execute one at a time.
func WithController(rc *resource.Controller) SweepOption {
	return func(o *sweepOptions) {
		o.controller = rc
	}
}

// WithClusterOptions applies opts to every run of the sweep.
// WithSeed, WithRand and WithInitialIndices are overridden by the sweep's seeds.
func WithClusterOptions(opts ...Option) SweepOption {
	return func(o *sweepOptions) {
		o.clusterOptions = append(o.clusterOptions, opts...)
	}
}

// Sweep clusters data with every k in ks, restarts times each, and reports
// per-k aggregates in the order of ks. It does not choose a k.
//
// Any failing run aborts the sweep and no partial results are returned.
func Sweep(ctx context.Context, data [][]float64, ks []int, restarts int, optFns ...SweepOption) ([]SweepResult, error) {
	if restarts <= 0 {
		return nil, ErrInvalidRestarts
	}

	so := sweepOptions{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&so)
		}
	}
	if !so.hasBaseSeed {
		so.baseSeed = time.Now().UnixNano()
	}
	rc := so.controller
	if rc == nil {
		rc = resource.NewController(resource.Config{})
	}
	logger := applyOptions(so.clusterOptions).logger

	runs := make([][]*Result, len(ks))
	for i := range runs {
		runs[i] = make([]*Result, restarts)
	}
	mem := runMemory(len(data))

	g, gctx := errgroup.WithContext(ctx)
	for ki, k := range ks {
		for r := 0; r < restarts; r++ {
			if err := rc.AcquireRun(gctx); err != nil {
				break
			}
			g.Go(func() error {
				defer rc.ReleaseRun()
				if err := rc.AcquireMemory(gctx, mem); err != nil {
					return err
				}
				defer rc.ReleaseMemory(mem)

				opts := append(append([]Option(nil), so.clusterOptions...), func(o *options) {
					o.rng = nil
					o.initialIndices = nil
					o.seed = so.baseSeed + int64(r)
					o.hasSeed = true
				})
				res, err := Cluster(gctx, data, k, opts...)
				if err != nil {
					return err
				}
				runs[ki][r] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(ks))
	for ki, k := range ks {
		out[ki] = summarize(k, runs[ki])
		logger.LogSweep(ctx, out[ki])
	}
	return out, nil
}

func summarize(k int, runs []*Result) SweepResult {
	sr := SweepResult{K: k, Runs: runs, Best: runs[0]}
	sr.MinSSE, sr.MaxSSE = runs[0].SSE, runs[0].SSE
	var sum float64
	for _, r := range runs {
		sum += r.SSE
		if r.SSE < sr.Best.SSE {
			sr.Best = r
		}
		if r.SSE < sr.MinSSE {
			sr.MinSSE = r.SSE
		}
		if r.SSE > sr.MaxSSE {
			sr.MaxSSE = r.SSE
		}
	}
	sr.MeanSSE = sum / float64(len(runs))
	return sr
}

// runMemory estimates the working set of one run: the assignment buffer
// and the per-cluster sums it accumulates.
func runMemory(n int) int64 {
	return int64(n) * 16
}
