package compression

import (
	"bytes"
	"io/ioutil"

	"github.com/andybalholm/brotli"
	"github.com/hexbee-net/errors"
)

type Brotli struct{}

func (c Brotli) DecompressBlock(block []byte, uncompressedSize int32) ([]byte, error) {
	buf := bytes.NewReader(block)
	r := brotli.NewReader(buf)

	ret, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress Brotli data")
	}

	return ret, nil
}
