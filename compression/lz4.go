package compression //nolint:dupl // it's easier to duplicate the algorithm wrappers

import (
	"bytes"
	"io/ioutil"

	"github.com/hexbee-net/errors"
	"github.com/pierrec/lz4"
)

// LZ4 decodes the legacy LZ4 codec, which some writers framed as a plain
// LZ4 stream rather than the Hadoop-compatible block format.
type LZ4 struct{}

func (c LZ4) DecompressBlock(block []byte, uncompressedSize int32) ([]byte, error) {
	buf := bytes.NewReader(block)
	r := lz4.NewReader(buf)

	ret, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress LZ4 data")
	}

	return ret, nil
}

// LZ4Raw decodes LZ4_RAW, a bare LZ4 block with no frame header. The
// destination must be sized up front, hence the uncompressedSize parameter.
type LZ4Raw struct{}

func (c LZ4Raw) DecompressBlock(block []byte, uncompressedSize int32) ([]byte, error) {
	dst := make([]byte, uncompressedSize)

	n, err := lz4.UncompressBlock(block, dst)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress LZ4_RAW data")
	}

	return dst[:n], nil
}
