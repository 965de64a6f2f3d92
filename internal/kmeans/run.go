package kmeans

import (
	"context"
	"fmt"
	"math"

	"github.com/hupe1980/snapmeans/dataset"
)

const (
	// DefaultThreshold is the SSE delta at or below which a run converges.
	DefaultThreshold = 0.001
	// DefaultMaxIterations caps the number of iteration bodies.
	DefaultMaxIterations = 100
)

// State is a driver state.
type State int

const (
	Initializing State = iota
	Iterating
	Converged
	MaxIterationsReached
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max_iterations_reached"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Iteration describes one completed iteration body.
type Iteration struct {
	Number int
	SSE    float64
	Delta  float64
	Empty  []int
}

// Config controls a single run.
type Config struct {
	K             int
	Threshold     float64
	MaxIterations int

	// Rand is used when InitialIndices is empty.
	Rand           Intner
	InitialIndices []int

	EmptyPolicy EmptyPolicy
	Workers     int

	// OnIteration is called after every iteration body.
	OnIteration func(Iteration)
}

// Result is the outcome of a run.
type Result struct {
	// SSE is the value computed in the last iteration.
	SSE float64
	// CentroidIndices are the records representing each cluster after the
	// last update, which runs once more after SSE was computed.
	CentroidIndices []int
	// Assignment is the assignment SSE was computed from.
	Assignment    []int
	Iterations    int
	State         State
	History       []float64
	EmptyClusters int
}

// Run clusters data until the SSE delta drops to the threshold or the
// iteration cap is hit.
func Run(ctx context.Context, data [][]float64, cfg Config) (*Result, error) {
	if err := dataset.Dataset(data).Validate(); err != nil {
		return nil, err
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}

	// Initializing
	var indices []int
	if len(cfg.InitialIndices) > 0 {
		if err := CheckIndices(cfg.InitialIndices, len(data), cfg.K); err != nil {
			return nil, err
		}
		indices = append([]int(nil), cfg.InitialIndices...)
	} else {
		if cfg.Rand == nil {
			return nil, fmt.Errorf("kmeans: no random source")
		}
		var err error
		if indices, err = Initialize(len(data), cfg.K, cfg.Rand); err != nil {
			return nil, err
		}
	}

	// Iterating
	res := &Result{State: Iterating}
	centroids := make([][]float64, cfg.K)
	var (
		assignment []int
		prevSSE    float64
		havePrev   bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for c, idx := range indices {
			centroids[c] = data[idx]
		}

		var err error
		assignment, err = Assign(ctx, data, centroids, cfg.Workers, assignment)
		if err != nil {
			return nil, err
		}

		sse, err := SSE(data, assignment, centroids)
		if err != nil {
			return nil, err
		}

		delta := sse
		if havePrev {
			delta = math.Abs(sse - prevSSE)
		}
		prevSSE, havePrev = sse, true
		res.History = append(res.History, sse)

		upd, err := Update(ctx, data, assignment, indices, cfg.EmptyPolicy, cfg.Workers, res.Iterations+1)
		if err != nil {
			return nil, err
		}
		indices = upd.Indices
		res.EmptyClusters += len(upd.Empty)
		res.Iterations++

		if cfg.OnIteration != nil {
			cfg.OnIteration(Iteration{Number: res.Iterations, SSE: sse, Delta: delta, Empty: upd.Empty})
		}

		if delta <= cfg.Threshold {
			res.State = Converged
			break
		}
		if res.Iterations >= cfg.MaxIterations {
			res.State = MaxIterationsReached
			break
		}
	}

	res.SSE = prevSSE
	res.CentroidIndices = indices
	res.Assignment = assignment
	return res, nil
}
