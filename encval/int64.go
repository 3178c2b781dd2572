package encval //nolint:dupl // it's cleaner to keep each type separate, even with duplication

import (
	"encoding/binary"
	"io"

	"github.com/colstream/parquet/levels"
)

// Int64PlainDecoder decodes PLAIN-encoded INT64 values.
type Int64PlainDecoder struct {
	reader   io.Reader
	Unsigned bool
}

func (d *Int64PlainDecoder) Init(reader io.Reader) error {
	d.reader = reader
	return nil
}

func (d *Int64PlainDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	var n int64

	for count = range dest {
		if err := binary.Read(d.reader, binary.LittleEndian, &n); err != nil {
			return count, err
		}

		if d.Unsigned {
			dest[count] = uint64(n)
		} else {
			dest[count] = n
		}
	}

	return len(dest), nil
}

// Int64DeltaBPDecoder decodes DELTA_BINARY_PACKED INT64 values.
type Int64DeltaBPDecoder struct {
	levels.DeltaBinaryPackDecoder64
	Unsigned bool
}

func (d *Int64DeltaBPDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	for i := range dest {
		u, err := d.Next()
		if err != nil {
			return i, err
		}

		if d.Unsigned {
			dest[i] = uint64(u)
		} else {
			dest[i] = u
		}
	}

	return len(dest), nil
}
