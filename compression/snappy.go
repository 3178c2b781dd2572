package compression

import "github.com/golang/snappy"

type Snappy struct{}

func (c Snappy) DecompressBlock(block []byte, uncompressedSize int32) ([]byte, error) {
	return snappy.Decode(nil, block)
}
