package layout

import (
	"bytes"
	"io"

	"github.com/colstream/parquet/compression"
	"github.com/colstream/parquet/format"
	"github.com/hexbee-net/errors"
)

// blockReader decompresses a page's on-wire body. codec is the column
// chunk's compression codec; a chunk's dictionary page and every data page
// in it share the same codec.
type blockReader struct{}

func (blockReader) readBlockData(in io.Reader, codec format.CompressionCodec, compressedSize, uncompressedSize int32) (io.Reader, error) {
	if compressedSize < 0 || uncompressedSize < 0 {
		return nil, errors.WithFields(
			errors.New("invalid page data size"),
			errors.Fields{
				"compressed-size":   compressedSize,
				"uncompressed-size": uncompressedSize,
			})
	}

	buf := make([]byte, compressedSize)
	if _, err := io.ReadFull(in, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read block data")
	}

	decompressor, err := compression.ForCodec(codec)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	res, err := decompressor.DecompressBlock(buf, uncompressedSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress block")
	}

	if int32(len(res)) != uncompressedSize {
		return nil, errors.WithFields(
			errors.New("invalid size for decompressed data"),
			errors.Fields{
				"expected": uncompressedSize,
				"actual":   len(res),
			})
	}

	return bytes.NewReader(res), nil
}
