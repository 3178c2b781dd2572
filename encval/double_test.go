package encval

import (
	"bytes"
	"io"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoublePlainDecoder_DecodeValues(t *testing.T) {
	reader := bytes.NewReader([]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x40,
	})

	d := DoublePlainDecoder{}
	require.NoError(t, d.Init(reader))

	dest := make([]interface{}, 2)
	cnt, err := d.DecodeValues(dest)

	require.NoError(t, err)
	assert.Equal(t, 2, cnt)
	assert.Equal(t, []interface{}{1., 2.}, dest)
}

func TestDoublePlainDecoder_Init_NilReader(t *testing.T) {
	d := DoublePlainDecoder{}
	err := d.Init(nil)
	assert.EqualError(t, errors.Cause(err), errNilReader.Error())
}

func TestDoublePlainDecoder_DecodeValues_EOF(t *testing.T) {
	d := DoublePlainDecoder{}
	require.NoError(t, d.Init(bytes.NewReader(nil)))

	dest := make([]interface{}, 1)
	_, err := d.DecodeValues(dest)
	assert.Equal(t, io.EOF, err)
}
