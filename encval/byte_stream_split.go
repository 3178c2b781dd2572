package encval

import (
	"encoding/binary"
	"io"
	"io/ioutil"
	"math"

	"github.com/hexbee-net/errors"
)

// ByteStreamSplitDecoder decodes BYTE_STREAM_SPLIT: for a K-byte physical
// type, the encoder transposes the page's values into K byte-planes (all
// byte 0's, then all byte 1's, ...) to improve downstream compression.
// Decoding needs the whole page up front to find the plane boundaries,
// which is why Init reads the reader to EOF; callers must hand it a reader
// bounded to exactly this page's value bytes.
type ByteStreamSplitDecoder struct {
	width   int
	convert func([]byte) interface{}

	buf   []byte
	count int
	pos   int
}

// NewByteStreamSplitDecoder builds a decoder for a width-byte physical
// type. convert turns the reassembled little-endian bytes of one value
// into the Go value DecodeValues should emit.
func NewByteStreamSplitDecoder(width int, convert func([]byte) interface{}) *ByteStreamSplitDecoder {
	return &ByteStreamSplitDecoder{width: width, convert: convert}
}

// NewFloatByteStreamSplitDecoder decodes BYTE_STREAM_SPLIT FLOAT columns.
func NewFloatByteStreamSplitDecoder() *ByteStreamSplitDecoder {
	return NewByteStreamSplitDecoder(4, func(b []byte) interface{} {
		return math.Float32frombits(binary.LittleEndian.Uint32(b))
	})
}

// NewDoubleByteStreamSplitDecoder decodes BYTE_STREAM_SPLIT DOUBLE columns.
func NewDoubleByteStreamSplitDecoder() *ByteStreamSplitDecoder {
	return NewByteStreamSplitDecoder(8, func(b []byte) interface{} {
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	})
}

// NewInt32ByteStreamSplitDecoder decodes BYTE_STREAM_SPLIT INT32 columns.
func NewInt32ByteStreamSplitDecoder() *ByteStreamSplitDecoder {
	return NewByteStreamSplitDecoder(4, func(b []byte) interface{} {
		return int32(binary.LittleEndian.Uint32(b))
	})
}

// NewInt64ByteStreamSplitDecoder decodes BYTE_STREAM_SPLIT INT64 columns.
func NewInt64ByteStreamSplitDecoder() *ByteStreamSplitDecoder {
	return NewByteStreamSplitDecoder(8, func(b []byte) interface{} {
		return int64(binary.LittleEndian.Uint64(b))
	})
}

// NewFixedLenByteStreamSplitDecoder decodes BYTE_STREAM_SPLIT
// FIXED_LEN_BYTE_ARRAY columns of the given element width, returning the
// reassembled bytes unconverted.
func NewFixedLenByteStreamSplitDecoder(width int) *ByteStreamSplitDecoder {
	return NewByteStreamSplitDecoder(width, func(b []byte) interface{} {
		out := make([]byte, len(b))
		copy(out, b)

		return out
	})
}

func (d *ByteStreamSplitDecoder) Init(reader io.Reader) error {
	buf, err := ioutil.ReadAll(reader)
	if err != nil {
		return errors.Wrap(err, "failed to read byte-stream-split page body")
	}

	if d.width <= 0 || len(buf)%d.width != 0 {
		return errors.WithFields(
			errors.New("byte-stream-split: page size is not a multiple of the element width"),
			errors.Fields{"width": d.width, "size": len(buf)})
	}

	d.buf = buf
	d.count = len(buf) / d.width
	d.pos = 0

	return nil
}

func (d *ByteStreamSplitDecoder) DecodeValues(dest []interface{}) (count int, err error) {
	raw := make([]byte, d.width)

	for i := range dest {
		if d.pos >= d.count {
			return i, io.EOF
		}

		for plane := 0; plane < d.width; plane++ {
			raw[plane] = d.buf[plane*d.count+d.pos]
		}

		dest[i] = d.convert(raw)
		d.pos++
	}

	return len(dest), nil
}
