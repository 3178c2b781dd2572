package levels

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHybridDecoder_GroupBoundary(t *testing.T) {
	b := []byte{
		(1 << 1) | 1,
		(1 << 0) | (2 << 2) | (3 << 4),
	}

	d := NewHybridDecoder(2, false)

	reader := bytes.NewReader(b)
	require.NoError(t, d.Init(reader))

	v, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	v, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	v, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)

	assert.Equal(t, 0, reader.Len())
}

func TestHybridDecoder_RLERun(t *testing.T) {
	// RLE run of 4 repeats of value 5, bit width 3 (value size 1 byte).
	b := []byte{
		(4 << 1) | 0,
		5,
	}

	d := NewHybridDecoder(3, false)
	require.NoError(t, d.Init(bytes.NewReader(b)))

	for i := 0; i < 4; i++ {
		v, err := d.Next()
		require.NoError(t, err)
		assert.Equal(t, int32(5), v)
	}
}

func TestHybridDecoder_ZeroWidthAlwaysZero(t *testing.T) {
	d := NewHybridDecoder(0, false)
	require.NoError(t, d.Init(bytes.NewReader(nil)))

	for i := 0; i < 3; i++ {
		v, err := d.Next()
		require.NoError(t, err)
		assert.Equal(t, int32(0), v)
	}
}
