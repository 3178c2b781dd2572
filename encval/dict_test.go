package encval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictDecoder_DecodeValues(t *testing.T) {
	// bit-width byte (2), a bit-packed run header ((1<<1)|1 = 3) covering
	// one group of 8 packed 2-bit indices: 0,1,2,0,1,2,0,1.
	reader := bytes.NewReader([]byte{2, 3, 0x24, 0x49})

	d := DictDecoder{}
	d.SetValues([]interface{}{"a", "b", "c"})

	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 4)
	cnt, err := d.DecodeValues(dest)

	require.NoError(t, err)
	assert.Equal(t, 4, cnt)
	assert.Equal(t, []interface{}{"a", "b", "c", "a"}, dest)
}

func TestDictDecoder_DecodeValues_Raw(t *testing.T) {
	reader := bytes.NewReader([]byte{2, 3, 0x24, 0x49})

	d := DictDecoder{}
	d.SetValues([]interface{}{"a", "b", "c"})
	d.SetRaw(true)

	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 4)
	_, err := d.DecodeValues(dest)

	require.NoError(t, err)
	assert.Equal(t, []interface{}{int32(0), int32(1), int32(2), int32(0)}, dest)
}

func TestDictDecoder_DecodeValues_InvalidIndex(t *testing.T) {
	// index 3 packed first, dictionary has only 2 values.
	reader := bytes.NewReader([]byte{2, 3, 0x03, 0x00})

	d := DictDecoder{}
	d.SetValues([]interface{}{"a", "b"})

	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 1)
	_, err := d.DecodeValues(dest)
	assert.Error(t, err)
}

func TestDictDecoder_Init_InvalidBitWidth(t *testing.T) {
	reader := bytes.NewReader([]byte{33})

	d := DictDecoder{}
	err := d.Init(reader)
	assert.Error(t, err)
}
