package encval //nolint:dupl // it's cleaner to keep each type separate, even with duplication

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/hexbee-net/errors"
)

// DoublePlainDecoder decodes PLAIN-encoded DOUBLE values.
type DoublePlainDecoder struct {
	reader io.Reader
}

func (d *DoublePlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *DoublePlainDecoder) DecodeValues(dest []interface{}) (int, error) {
	var data uint64

	for i := range dest {
		if err := binary.Read(d.reader, binary.LittleEndian, &data); err != nil {
			return i, err
		}

		dest[i] = math.Float64frombits(data)
	}

	return len(dest), nil
}
