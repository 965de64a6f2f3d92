package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	K   int       `json:"k"`
	SSE float64   `json:"sse"`
	C   []float64 `json:"centroid"`
}

func TestCodecs(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			in := sample{K: 3, SSE: 1.5, C: []float64{0.25, 1}}

			b, err := c.Marshal(in)
			require.NoError(t, err)
			assert.Contains(t, string(b), `"sse"`)

			var out sample
			require.NoError(t, c.Unmarshal(b, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestByName(t *testing.T) {
	c, err := ByName("json")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = ByName("")
	require.NoError(t, err)
	assert.Equal(t, Default.Name(), c.Name())

	_, err = ByName("msgpack")
	assert.Error(t, err)
}
