package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformPoints(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	for _, p := range v {
		for _, x := range p {
			assert.GreaterOrEqual(t, x, 0.0)
			assert.Less(t, x, 1.0)
		}
	}
}

func TestUniformRangePoints(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformRangePoints(8, 4, -1, 1)

	assert.Equal(t, 8, len(v))
	assert.GreaterOrEqual(t, v[1][0], -1.0)
	assert.Less(t, v[1][0], 1.0)
}

func TestBlobs(t *testing.T) {
	rng := NewRNG(4711)

	v, labels := rng.Blobs(3, 10, 2, 50, 0.1)

	assert.Equal(t, 30, len(v))
	assert.Equal(t, 30, len(labels))
	assert.Equal(t, 0, labels[0])
	assert.Equal(t, 2, labels[29])
	assert.InDelta(t, 100.0, v[29][0], 1)
	assert.InDelta(t, 0.0, v[29][1], 1)
	assert.InDelta(t, 50.0, v[10][1], 1)
}

func TestRepeat(t *testing.T) {
	p := []float64{1, 2}
	v := Repeat(3, p)

	assert.Equal(t, [][]float64{{1, 2}, {1, 2}, {1, 2}}, v)
	v[0][0] = 9
	assert.Equal(t, 1.0, p[0])
	assert.Equal(t, 1.0, v[1][0])
}

func TestScripted(t *testing.T) {
	s := Scripted(3, 1)

	assert.Equal(t, 3, s.Intn(10))
	assert.Equal(t, 1, s.Intn(10))
	assert.Equal(t, 1, s.Intn(2))
	assert.Equal(t, 3, s.Calls())
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.UniformPoints(1, 10)

	rng.Reset()
	v2 := rng.UniformPoints(1, 10)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}
