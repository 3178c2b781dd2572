package compression

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/colstream/parquet/format"
	"github.com/golang/snappy"
	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCodec_KnownCodecs(t *testing.T) {
	for _, codec := range []format.CompressionCodec{
		format.CompressionCodec_UNCOMPRESSED,
		format.CompressionCodec_SNAPPY,
		format.CompressionCodec_GZIP,
		format.CompressionCodec_BROTLI,
		format.CompressionCodec_LZ4,
		format.CompressionCodec_LZ4_RAW,
		format.CompressionCodec_ZSTD,
	} {
		_, err := ForCodec(codec)
		assert.NoError(t, err, codec.String())
	}
}

func TestForCodec_Unsupported(t *testing.T) {
	_, err := ForCodec(format.CompressionCodec_LZO)
	require.Error(t, err)
	assert.EqualError(t, errors.Cause(err), ErrUnsupportedCodec.Error())
}

func TestUncompressed_DecompressBlock(t *testing.T) {
	out, err := Uncompressed{}.DecompressBlock([]byte("hello"), 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)
}

func TestSnappy_DecompressBlock(t *testing.T) {
	block := snappy.Encode(nil, []byte("hello world"))

	out, err := Snappy{}.DecompressBlock(block, 11)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), out)
}

func TestGZip_DecompressBlock(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out, err := GZip{}.DecompressBlock(buf.Bytes(), 11)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), out)
}

func TestRegister_OverridesCodec(t *testing.T) {
	Register(format.CompressionCodec_LZO, Uncompressed{})
	defer delete(registry, format.CompressionCodec_LZO)

	dec, err := ForCodec(format.CompressionCodec_LZO)
	require.NoError(t, err)
	assert.IsType(t, Uncompressed{}, dec)
}
