package encval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt32PlainDecoder_DecodeValues(t *testing.T) {
	reader := bytes.NewReader([]byte{1, 0, 0, 0, 2, 0, 0, 0})

	d := Int32PlainDecoder{}
	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 2)
	cnt, err := d.DecodeValues(dest)

	require.NoError(t, err)
	assert.Equal(t, 2, cnt)
	assert.Equal(t, []interface{}{int32(1), int32(2)}, dest)
}

func TestInt32PlainDecoder_DecodeValues_Unsigned(t *testing.T) {
	reader := bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff})

	d := Int32PlainDecoder{Unsigned: true}
	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 1)
	_, err := d.DecodeValues(dest)

	require.NoError(t, err)
	assert.Equal(t, []interface{}{uint32(0xffffffff)}, dest)
}

func TestInt32DeltaBPDecoder_DecodeValues(t *testing.T) {
	// block size 128, 4 miniblocks, 3 values, first value 5, min delta 1
	// (zigzag 2), all miniblock bit widths zero.
	reader := bytes.NewReader([]byte{
		128, 1,
		4,
		3,
		10, // zigzag(5) = 10
		2,  // zigzag min delta(1) = 2
		0, 0, 0, 0,
	})

	d := Int32DeltaBPDecoder{}
	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 3)
	cnt, err := d.DecodeValues(dest)

	require.NoError(t, err)
	assert.Equal(t, 3, cnt)
	assert.Equal(t, []interface{}{int32(5), int32(6), int32(7)}, dest)
}
