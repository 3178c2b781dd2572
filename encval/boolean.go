package encval

import (
	"io"

	"github.com/colstream/parquet/levels"
)

// BooleanPlainDecoder decodes PLAIN-encoded BOOLEAN values: one bit per
// value, LSB first, packed 8 to a byte.
type BooleanPlainDecoder struct {
	reader io.Reader
	left   []bool
}

func (d *BooleanPlainDecoder) Init(reader io.Reader) error {
	d.reader = reader
	d.left = nil

	return nil
}

func (d *BooleanPlainDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	start := 0

	if len(d.left) > 0 {
		d.left, start = copyLeftOvers(dest, d.left)

		if d.left != nil {
			return len(dest), nil
		}
	}

	buf := make([]byte, 1)

	for i := start; i < len(dest); i += 8 {
		if _, err := io.ReadFull(d.reader, buf); err != nil {
			return i, err
		}

		b := unpackBoolByte(buf[0])

		for j := 0; j < 8; j++ {
			if i+j < len(dest) {
				dest[i+j] = b[j]
			} else {
				d.left = append(d.left, b[j])
			}
		}
	}

	return len(dest), nil
}

func unpackBoolByte(b byte) (a [8]bool) {
	for i := 0; i < 8; i++ {
		a[i] = (b>>uint(i))&1 == 1
	}

	return a
}

// copyLeftOvers copies as much of src into dest as fits, returning the
// unconsumed remainder (nil once src is exhausted) and how many elements of
// dest it filled.
func copyLeftOvers(dest []interface{}, src []bool) (leftOver []bool, readCount int) {
	size := len(dest)
	clean := false

	if len(src) <= size {
		size = len(src)
		clean = true
	}

	for i := 0; i < size; i++ {
		dest[i] = src[i]
	}

	if clean {
		return nil, size
	}

	return src[size:], size
}

// BooleanRLEDecoder decodes RLE-encoded BOOLEAN values (bit width 1).
type BooleanRLEDecoder struct {
	decoder *levels.HybridDecoder
}

func (d *BooleanRLEDecoder) Init(reader io.Reader) error {
	d.decoder = levels.NewHybridDecoder(1, false)

	return d.decoder.InitSize(reader)
}

func (d *BooleanRLEDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	total := len(dest)

	for i := 0; i < total; i++ {
		n, err := d.decoder.Next()
		if err != nil {
			return i, err
		}

		dest[i] = n == 1
	}

	return total, nil
}
