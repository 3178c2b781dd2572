package encval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooleanPlainDecoder_DecodeValues(t *testing.T) {
	// 0b00000101 = true, false, true, false, false, false, false, false
	reader := bytes.NewReader([]byte{0x05})

	d := BooleanPlainDecoder{}
	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 8)
	cnt, err := d.DecodeValues(dest)

	require.NoError(t, err)
	assert.Equal(t, 8, cnt)
	assert.Equal(t, []interface{}{true, false, true, false, false, false, false, false}, dest)
}

func TestBooleanPlainDecoder_DecodeValues_AcrossByteBoundary(t *testing.T) {
	// two bytes: read 3 then 5 values, exercising the leftover buffer path.
	reader := bytes.NewReader([]byte{0x01, 0x01})

	d := BooleanPlainDecoder{}
	require.NoError(t, d.Init(reader))

	first := make([]interface{}, 3)
	_, err := d.DecodeValues(first)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{true, false, false}, first)

	second := make([]interface{}, 5)
	_, err = d.DecodeValues(second)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{false, false, false, false, false}, second)
}

func TestBooleanRLEDecoder_DecodeValues(t *testing.T) {
	// 4-byte length prefix (InitSize), then an RLE run: (4 << 1) header for
	// run-length 4, value byte 0x01 (true).
	reader := bytes.NewReader([]byte{0x02, 0x00, 0x00, 0x00, 0x08, 0x01})

	d := BooleanRLEDecoder{}
	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 4)
	cnt, err := d.DecodeValues(dest)

	require.NoError(t, err)
	assert.Equal(t, 4, cnt)
	assert.Equal(t, []interface{}{true, true, true, true}, dest)
}
