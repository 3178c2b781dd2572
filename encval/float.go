package encval //nolint:dupl // it's cleaner to keep each type separate, even with duplication

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/hexbee-net/errors"
)

// FloatPlainDecoder decodes PLAIN-encoded FLOAT values.
type FloatPlainDecoder struct {
	reader io.Reader
}

func (d *FloatPlainDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.reader = reader

	return nil
}

func (d *FloatPlainDecoder) DecodeValues(dest []interface{}) (int, error) {
	var data uint32

	for i := range dest {
		if err := binary.Read(d.reader, binary.LittleEndian, &data); err != nil {
			return i, errors.Wrap(err, "failed to read values data")
		}

		dest[i] = math.Float32frombits(data)
	}

	return len(dest), nil
}
