package levels

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/hexbee-net/errors"
)

type byteReader struct {
	io.Reader
}

func (r byteReader) ReadByte() (byte, error) {
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r.Reader, buf); err != nil {
		return 0, err
	}

	return buf[0], nil
}

func asByteReader(r io.Reader) io.ByteReader {
	if b, ok := r.(io.ByteReader); ok {
		return b
	}

	return &byteReader{Reader: r}
}

func readUVarInt32(r io.Reader) (int32, error) {
	i, err := binary.ReadUvarint(asByteReader(r))
	if err != nil {
		return 0, err
	}

	if i > math.MaxInt32 {
		return 0, errors.New("int32 out of range")
	}

	return int32(i), nil
}

func readVarInt32(r io.Reader) (int32, error) {
	i, err := binary.ReadVarint(asByteReader(r))
	if err != nil {
		return 0, err
	}

	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, errors.New("int32 out of range")
	}

	return int32(i), nil
}

func readVarInt64(r io.Reader) (int64, error) {
	return binary.ReadVarint(asByteReader(r))
}

func writeFull(w io.Writer, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	cnt, err := w.Write(buf)
	if err != nil {
		return err
	}

	if cnt != len(buf) {
		return errors.WithFields(
			errors.New("invalid number of bytes written"),
			errors.Fields{
				"expected": len(buf),
				"actual":   cnt,
			})
	}

	return nil
}
