package encval

import (
	"io"

	"github.com/hexbee-net/errors"
)

const sizeInt96 = 12

// Int96PlainDecoder decodes PLAIN-encoded INT96 values (legacy timestamps).
// Each value is returned as the raw 12-byte array; convert.INT96ToTime
// interprets it.
type Int96PlainDecoder struct {
	reader io.Reader
}

func (d *Int96PlainDecoder) Init(reader io.Reader) error {
	d.reader = reader
	return nil
}

func (d *Int96PlainDecoder) DecodeValues(dest []interface{}) (int, error) {
	idx := 0

	for range dest {
		var data [sizeInt96]byte

		n, err := d.reader.Read(data[:])

		if n == sizeInt96 {
			dest[idx] = data
			idx++
		}

		if err != nil && (n == 0 || n == sizeInt96) {
			return idx, err
		}

		if err != nil {
			return idx, errors.Wrap(err, "not enough bytes to read the Int96")
		}
	}

	return len(dest), nil
}
