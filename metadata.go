package parquet

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/source"
	"github.com/hexbee-net/errors"
)

const (
	magic         = "PAR1"
	magicLen      = int64(len(magic))
	footerLenSize = int64(4)
)

// ReadMetadata fetches and parses src's footer: the trailing magic, the
// four-byte footer length ahead of it, and the compact-Thrift FileMetaData
// the length names. It issues at most three Slice calls regardless of file
// size: one for a tail of up to 64KiB, one for the footer body (skipped if
// the tail already covered it), and one for the four-byte leading magic.
func ReadMetadata(ctx context.Context, src source.Source) (*format.FileMetaData, error) {
	size, err := src.Size(ctx)
	if err != nil {
		return nil, errors.Wrap(ErrByteSource, err.Error())
	}

	if size < 2*magicLen+footerLenSize {
		return nil, errors.WithFields(ErrCorruptMetadata, errors.Fields{"reason": "file too small to hold header and footer"})
	}

	const tailProbe = 64 * 1024

	tailLen := int64(tailProbe)
	if tailLen > size {
		tailLen = size
	}

	tail, err := src.Slice(ctx, size-tailLen, size)
	if err != nil {
		return nil, errors.Wrap(ErrByteSource, err.Error())
	}

	if !bytes.Equal(tail[len(tail)-int(magicLen):], []byte(magic)) {
		return nil, errors.WithFields(ErrCorruptMetadata, errors.Fields{"reason": "missing trailing magic"})
	}

	footerLenOff := len(tail) - int(magicLen) - int(footerLenSize)
	footerLen := int64(binary.LittleEndian.Uint32(tail[footerLenOff : footerLenOff+int(footerLenSize)]))

	if footerLen <= 0 || footerLen > size-2*magicLen-footerLenSize {
		return nil, errors.WithFields(ErrCorruptMetadata, errors.Fields{"reason": "invalid footer length", "length": footerLen})
	}

	var footer []byte

	if footerLen <= int64(footerLenOff) {
		footer = tail[int64(footerLenOff)-footerLen : footerLenOff]
	} else {
		footerStart := size - footerLenSize - magicLen - footerLen

		buf, err := src.Slice(ctx, footerStart, footerStart+footerLen)
		if err != nil {
			return nil, errors.Wrap(ErrByteSource, err.Error())
		}

		footer = buf
	}

	head, err := src.Slice(ctx, 0, magicLen)
	if err != nil {
		return nil, errors.Wrap(ErrByteSource, err.Error())
	}

	if !bytes.Equal(head, []byte(magic)) {
		return nil, errors.WithFields(ErrCorruptMetadata, errors.Fields{"reason": "missing leading magic"})
	}

	meta := &format.FileMetaData{}
	if err := format.ReadThrift(meta, bytes.NewReader(footer)); err != nil {
		return nil, errors.Wrap(ErrCorruptMetadata, err.Error())
	}

	return meta, nil
}
