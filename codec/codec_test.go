package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			in := map[string]any{"id": float64(1), "name": "Joe"}

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out map[string]any
			err = c.Unmarshal(data, &out)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}
