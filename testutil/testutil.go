package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points with coordinates in [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dim int) [][]float64 {
	return r.UniformRangePoints(num, dim, 0, 1)
}

// UniformRangePoints generates num points with coordinates in [minVal, maxVal).
func (r *RNG) UniformRangePoints(num, dim int, minVal, maxVal float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	data := make([]float64, num*dim)
	points := make([][]float64, num)
	for i := range num {
		p := data[i*dim : (i+1)*dim]
		for j := range p {
			p[j] = minVal + r.rand.Float64()*span
		}
		points[i] = p
	}
	return points
}

// Blobs generates perCluster points around each of clusters centers.
// Centers lie on a grid with the given separation; every coordinate gets
// Gaussian noise with standard deviation spread. Points are grouped by
// cluster and labels holds each point's cluster.
func (r *RNG) Blobs(clusters, perCluster, dim int, separation, spread float64) (points [][]float64, labels []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	points = make([][]float64, 0, clusters*perCluster)
	labels = make([]int, 0, clusters*perCluster)
	for c := range clusters {
		center := gridCenter(c, dim, separation)
		for range perCluster {
			p := make([]float64, dim)
			for j := range p {
				p[j] = center[j] + r.rand.NormFloat64()*spread
			}
			points = append(points, p)
			labels = append(labels, c)
		}
	}
	return points, labels
}

// gridCenter places center c on the corners of a unit grid scaled by
// separation, walking the first dimension first.
func gridCenter(c, dim int, separation float64) []float64 {
	center := make([]float64, dim)
	if dim == 1 {
		center[0] = float64(c) * separation
		return center
	}
	center[0] = float64(c) * separation
	center[1] = float64(c%2) * separation
	return center
}

// Repeat returns num copies of p.
func Repeat(num int, p []float64) [][]float64 {
	points := make([][]float64, num)
	for i := range points {
		points[i] = append([]float64(nil), p...)
	}
	return points
}

// ScriptedRNG returns fixed values from Intn, cycling when exhausted.
// Values are reduced modulo n.
type ScriptedRNG struct {
	values []int
	pos    int
}

// Scripted creates a ScriptedRNG returning values in order.
func Scripted(values ...int) *ScriptedRNG {
	return &ScriptedRNG{values: values}
}

// Intn returns the next scripted value modulo n.
func (s *ScriptedRNG) Intn(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

// Calls returns how many values have been drawn.
func (s *ScriptedRNG) Calls() int {
	return s.pos
}
