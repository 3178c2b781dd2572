package encval //nolint:dupl // it's cleaner to keep each type separate, even with duplication

import (
	"encoding/binary"
	"io"

	"github.com/colstream/parquet/levels"
)

// Int32PlainDecoder decodes PLAIN-encoded INT32 values.
type Int32PlainDecoder struct {
	reader   io.Reader
	Unsigned bool
}

func (d *Int32PlainDecoder) Init(reader io.Reader) error {
	d.reader = reader
	return nil
}

func (d *Int32PlainDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	var n int32

	for count = range dest {
		if err := binary.Read(d.reader, binary.LittleEndian, &n); err != nil {
			return count, err
		}

		if d.Unsigned {
			dest[count] = uint32(n)
		} else {
			dest[count] = n
		}
	}

	return len(dest), nil
}

// Int32DeltaBPDecoder decodes DELTA_BINARY_PACKED INT32 values.
type Int32DeltaBPDecoder struct {
	levels.DeltaBinaryPackDecoder32
	Unsigned bool
}

func (d *Int32DeltaBPDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	for i := range dest {
		u, err := d.Next()
		if err != nil {
			return i, err
		}

		if d.Unsigned {
			dest[i] = uint32(u)
		} else {
			dest[i] = u
		}
	}

	return len(dest), nil
}
