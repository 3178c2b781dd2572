// Package compression dispatches page bodies to the codec named in the
// column chunk's metadata. Only decompression is needed: this module never
// writes Parquet files.
package compression

import (
	"github.com/colstream/parquet/format"
	"github.com/hexbee-net/errors"
)

// BlockDecompressor turns a compressed page block into its uncompressed
// bytes. Callers know the expected uncompressed size ahead of time from the
// page header and check it against the result.
type BlockDecompressor interface {
	// DecompressBlock inflates block. uncompressedSize is the size recorded
	// in the page header; most codecs ignore it and size their own output,
	// but raw block formats (LZ4_RAW) need it to size the destination buffer.
	DecompressBlock(block []byte, uncompressedSize int32) ([]byte, error)
}

// ErrUnsupportedCodec is returned by ForCodec when the column chunk names a
// codec this module has no decompressor for (LZO, or an unknown value).
var ErrUnsupportedCodec = errors.New("unsupported compression codec")

var registry = map[format.CompressionCodec]BlockDecompressor{
	format.CompressionCodec_UNCOMPRESSED: Uncompressed{},
	format.CompressionCodec_SNAPPY:       Snappy{},
	format.CompressionCodec_GZIP:         GZip{},
	format.CompressionCodec_BROTLI:       Brotli{},
	format.CompressionCodec_LZ4:          LZ4{},
	format.CompressionCodec_LZ4_RAW:      LZ4Raw{},
	format.CompressionCodec_ZSTD:         ZStd{},
}

// ForCodec returns the decompressor registered for codec.
func ForCodec(codec format.CompressionCodec) (BlockDecompressor, error) {
	d, ok := registry[codec]
	if !ok {
		return nil, errors.WithFields(ErrUnsupportedCodec, errors.Fields{"codec": codec.String()})
	}

	return d, nil
}

// Register adds or replaces the decompressor used for codec, letting a
// caller override or extend the built-in set (LZO, say, or a vendor-specific
// codec). Call it before starting any read: it mutates shared state that
// ForCodec reads without a lock.
func Register(codec format.CompressionCodec, dec BlockDecompressor) {
	registry[codec] = dec
}
