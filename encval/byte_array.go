package encval

import (
	"encoding/binary"
	"io"

	"github.com/colstream/parquet/levels"
	"github.com/hexbee-net/errors"
)

// ByteArrayPlainDecoder decodes PLAIN-encoded BYTE_ARRAY/FIXED_LEN_BYTE_ARRAY
// values. Length is 0 for variable-length BYTE_ARRAY (each value is
// prefixed with its own 4-byte length) and the fixed width for
// FIXED_LEN_BYTE_ARRAY.
type ByteArrayPlainDecoder struct {
	reader io.Reader

	Length int
}

func (d *ByteArrayPlainDecoder) Init(reader io.Reader) error {
	d.reader = reader
	return nil
}

func (d *ByteArrayPlainDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	for i := range dest {
		if dest[i], err = d.next(); err != nil {
			return i, err
		}
	}

	return len(dest), nil
}

func (d *ByteArrayPlainDecoder) next() ([]byte, error) {
	l := int32(d.Length)
	if l == 0 {
		if err := binary.Read(d.reader, binary.LittleEndian, &l); err != nil {
			return nil, err
		}

		if l < 0 {
			return nil, errors.New("bytearray/plain: len is negative")
		}
	}

	buf := make([]byte, l)

	if _, err := io.ReadFull(d.reader, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// ByteArrayDeltaLengthDecoder decodes DELTA_LENGTH_BYTE_ARRAY values: all
// lengths are packed up front as a DELTA_BINARY_PACKED INT32 stream,
// followed by the concatenated value bytes.
type ByteArrayDeltaLengthDecoder struct {
	reader   io.Reader
	position int
	lens     []int32
}

func (d *ByteArrayDeltaLengthDecoder) Init(reader io.Reader) error {
	d.reader = reader
	d.position = 0

	lensDecoder := Int32DeltaBPDecoder{}
	if err := lensDecoder.Init(reader); err != nil {
		return err
	}

	d.lens = make([]int32, lensDecoder.ValuesCount)

	return decodeInt32(&lensDecoder, d.lens)
}

func (d *ByteArrayDeltaLengthDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	total := len(dest)

	for i := 0; i < total; i++ {
		v, err := d.next()
		if err != nil {
			return i, err
		}

		dest[i] = v
	}

	return total, nil
}

func (d *ByteArrayDeltaLengthDecoder) next() ([]byte, error) {
	if d.position >= len(d.lens) {
		return nil, io.EOF
	}

	size := int(d.lens[d.position])
	value := make([]byte, size)

	if _, err := io.ReadFull(d.reader, value); err != nil {
		return nil, errors.Wrap(err, "there is no byte left")
	}

	d.position++

	return value, nil
}

// ByteArrayDeltaDecoder decodes DELTA_BYTE_ARRAY values: a stream of
// prefix lengths (shared with the previous value) followed by a
// DELTA_LENGTH_BYTE_ARRAY stream of the non-shared suffixes.
type ByteArrayDeltaDecoder struct {
	suffixDecoder ByteArrayDeltaLengthDecoder
	prefixLens    []int32
	previousValue []byte
}

func (d *ByteArrayDeltaDecoder) Init(reader io.Reader) error {
	lensDecoder := levels.DeltaBinaryPackDecoder32{}
	if err := lensDecoder.Init(reader); err != nil {
		return err
	}

	d.prefixLens = make([]int32, lensDecoder.ValuesCount)
	if err := decodeInt32(&lensDecoder, d.prefixLens); err != nil {
		return err
	}

	if err := d.suffixDecoder.Init(reader); err != nil {
		return err
	}

	if len(d.prefixLens) != len(d.suffixDecoder.lens) {
		return errors.WithFields(
			errors.New("bytearray/delta: different number of suffixes and prefixes"),
			errors.Fields{
				"prefix": len(d.prefixLens),
				"suffix": len(d.suffixDecoder.lens),
			})
	}

	d.previousValue = make([]byte, 0)

	return nil
}

func (d *ByteArrayDeltaDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	total := len(dest)

	for i := 0; i < total; i++ {
		suffix, err := d.suffixDecoder.next()
		if err != nil {
			return i, err
		}

		prefixLen := int(d.prefixLens[d.suffixDecoder.position-1])

		if len(d.previousValue) < prefixLen {
			return 0, errors.WithFields(
				errors.New("invalid prefix len in the stream"),
				errors.Fields{
					"expected": prefixLen,
					"actual":   len(d.previousValue),
				})
		}

		value := make([]byte, 0, prefixLen+len(suffix))
		if prefixLen > 0 {
			value = append(value, d.previousValue[:prefixLen]...)
		}

		value = append(value, suffix...)
		d.previousValue = value
		dest[i] = value
	}

	return total, nil
}
