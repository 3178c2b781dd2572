// Package layout walks a column chunk's byte range into its dictionary page
// (if any) and data pages, decompressing each page body and handing its
// levels and values off to the assembler.
package layout

import (
	"io"

	"github.com/colstream/parquet/encval"
	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/levels"
)

type getValueDecoderFn func(format.Encoding) (encval.ValuesDecoder, error)

// PageReader reads one page's worth of levels and values off an
// already-positioned chunk reader.
type PageReader interface {
	init(dDecoder, rDecoder getLevelDecoderFn, values getValueDecoderFn) error
	read(reader *offsetReader, pageHeader *format.PageHeader, codec format.CompressionCodec) error

	ReadValues(values []interface{}) (n, notNull int, dLevel *levels.PackedArray, rLevel *levels.PackedArray, err error)

	NumValues() int32
}

type page struct {
	pageHeader    *format.PageHeader
	valuesCount   int32
	valuesDecoder encval.ValuesDecoder
	blockReader   blockReader
}

func (p *page) readPageBlock(in io.Reader, codec format.CompressionCodec, compressedSize, uncompressedSize int32) (io.Reader, error) {
	return p.blockReader.readBlockData(in, codec, compressedSize, uncompressedSize)
}
