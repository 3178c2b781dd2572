package layout

import (
	"context"
	"math/bits"

	"github.com/colstream/parquet/encval"
	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/levels"
	"github.com/colstream/parquet/schema"
	"github.com/hexbee-net/errors"
)

// ByteSource fetches a half-open byte range [start, end) of the underlying
// file. ChunkReader fetches each column chunk as a single range so page
// walking never blocks on a second round trip.
type ByteSource interface {
	Slice(ctx context.Context, start, end int64) ([]byte, error)
}

// ChunkReader walks one column chunk's byte range into a dictionary page
// (if present) and its data pages.
type ChunkReader struct {
	// RawDictionary, when set, makes every dictionary-encoded data page
	// yield the raw dictionary indices instead of resolving them, for the
	// request option of the same name.
	RawDictionary bool
}

// NewChunkReader builds a ChunkReader. It holds no state beyond request
// options: compressor and value-decoder dispatch happen per-page from the
// format/encval/compression packages.
func NewChunkReader() *ChunkReader {
	return &ChunkReader{}
}

// ReadChunk fetches chunk's byte range from src and decodes its pages.
func (r *ChunkReader) ReadChunk(ctx context.Context, src ByteSource, col *schema.Column, chunk *format.ColumnChunk) ([]PageReader, error) {
	if err := checkColumnChunk(chunk, col); err != nil {
		return nil, err
	}

	start := chunk.MetaData.DataPageOffset
	if chunk.MetaData.DictionaryPageOffset != nil {
		start = *chunk.MetaData.DictionaryPageOffset
	}

	end := start + chunk.MetaData.TotalCompressedSize

	buf, err := src.Slice(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch column chunk bytes")
	}

	reader := newOffsetReader(buf)

	rDecoder, dDecoder := levelDecoderFns(col)

	return r.readPages(reader, col, chunk.MetaData, dDecoder, rDecoder)
}

// ReadDictionaryPageHeader's probe starts at dictHeaderProbeSize bytes and
// doubles on each retry, up to dictHeaderProbeMax.
const (
	dictHeaderProbeSize = 256
	dictHeaderProbeMax  = 64 * 1024
)

// ReadDictionaryPage fetches and decodes chunk's dictionary page, if it has
// one. The second return value is false when the chunk carries no
// dictionary page at all.
func (r *ChunkReader) ReadDictionaryPage(ctx context.Context, src ByteSource, col *schema.Column, chunk *format.ColumnChunk) ([]interface{}, bool, error) {
	if err := checkColumnChunk(chunk, col); err != nil {
		return nil, false, err
	}

	if chunk.MetaData.DictionaryPageOffset == nil {
		return nil, false, nil
	}

	start := *chunk.MetaData.DictionaryPageOffset
	end := chunk.MetaData.DataPageOffset

	if end <= start {
		end = start + chunk.MetaData.TotalCompressedSize
	}

	buf, err := src.Slice(ctx, start, end)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to fetch dictionary page bytes")
	}

	reader := newOffsetReader(buf)

	pageHeader, err := readPageHeader(reader)
	if err != nil {
		return nil, false, err
	}

	if pageHeader.Type != format.PageType_DICTIONARY_PAGE {
		return nil, false, errors.New("expected dictionary page at dictionary-page-offset")
	}

	dictPage := &dictPageReader{}

	de, err := encval.ForDictionaryPage(*col.Type(), col.TypeLength())
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get dictionary value decoder")
	}

	if err := dictPage.init(de); err != nil {
		return nil, false, err
	}

	if err := dictPage.read(reader, pageHeader, chunk.MetaData.Codec); err != nil {
		return nil, false, err
	}

	return dictPage.values, true, nil
}

// ReadDictionaryPageHeader reads only chunk's dictionary page header,
// without decoding its body, growing the probe window on a short read.
func (r *ChunkReader) ReadDictionaryPageHeader(ctx context.Context, src ByteSource, chunk *format.ColumnChunk) (*format.DictionaryPageHeader, bool, error) {
	if chunk.MetaData.DictionaryPageOffset == nil {
		return nil, false, nil
	}

	start := *chunk.MetaData.DictionaryPageOffset

	for probe := int64(dictHeaderProbeSize); probe <= dictHeaderProbeMax; probe *= 2 {
		buf, err := src.Slice(ctx, start, start+probe)
		if err != nil {
			return nil, false, errors.Wrap(err, "failed to fetch dictionary page header bytes")
		}

		pageHeader, err := readPageHeader(newOffsetReader(buf))
		if err != nil {
			continue
		}

		if pageHeader.Type != format.PageType_DICTIONARY_PAGE {
			return nil, false, errors.New("expected dictionary page at dictionary-page-offset")
		}

		if pageHeader.DictionaryPageHeader == nil {
			return nil, false, errors.New("missing dictionary page header")
		}

		return pageHeader.DictionaryPageHeader, true, nil
	}

	return nil, false, errors.WithFields(
		errors.New("dictionary page header exceeds probe window"),
		errors.Fields{"max-probe-bytes": dictHeaderProbeMax})
}

func levelDecoderFns(col *schema.Column) (rDecoder, dDecoder getLevelDecoderFn) {
	rDecoder = func(enc format.Encoding) (levelDecoder, error) {
		if enc != format.Encoding_RLE {
			return nil, errors.WithFields(
				errors.New("encoding not supported for repetition level"),
				errors.Fields{"encoding": enc.String()})
		}

		return &levelDecoderWrapper{
			Decoder: levels.NewHybridDecoder(bits.Len16(col.MaxRepetitionLevel()), true),
			max:     col.MaxRepetitionLevel(),
		}, nil
	}

	dDecoder = func(enc format.Encoding) (levelDecoder, error) {
		if enc != format.Encoding_RLE {
			return nil, errors.WithFields(
				errors.New("encoding not supported for definition level"),
				errors.Fields{"encoding": enc.String()})
		}

		return &levelDecoderWrapper{
			Decoder: levels.NewHybridDecoder(bits.Len16(col.MaxDefinitionLevel()), true),
			max:     col.MaxDefinitionLevel(),
		}, nil
	}

	if col.MaxRepetitionLevel() == 0 {
		rDecoder = func(format.Encoding) (levelDecoder, error) {
			return &levelDecoderWrapper{Decoder: levels.ConstDecoder(0), max: col.MaxRepetitionLevel()}, nil
		}
	}

	if col.MaxDefinitionLevel() == 0 {
		dDecoder = func(format.Encoding) (levelDecoder, error) {
			return &levelDecoderWrapper{Decoder: levels.ConstDecoder(0), max: col.MaxDefinitionLevel()}, nil
		}
	}

	return rDecoder, dDecoder
}

func (r *ChunkReader) readPages(reader *offsetReader, col *schema.Column, chunkMeta *format.ColumnMetaData, dDecoder, rDecoder getLevelDecoderFn) ([]PageReader, error) {
	var dictPage *dictPageReader

	var pages []PageReader

	for chunkMeta.TotalCompressedSize-reader.Count() > 0 {
		pageHeader, err := readPageHeader(reader)
		if err != nil {
			return nil, err
		}

		var p PageReader

		switch pageHeader.Type {
		case format.PageType_DICTIONARY_PAGE:
			if dictPage != nil {
				return nil, errors.New("there should be only one dictionary page per chunk")
			}

			dictPage = &dictPageReader{}

			de, err := encval.ForDictionaryPage(*col.Type(), col.TypeLength())
			if err != nil {
				return nil, errors.Wrap(err, "failed to get dictionary value decoder")
			}

			if err := dictPage.init(de); err != nil {
				return nil, err
			}

			if err := dictPage.read(reader, pageHeader, chunkMeta.Codec); err != nil {
				return nil, err
			}

			continue

		case format.PageType_DATA_PAGE:
			p = &dataPageReaderV1{page: page{pageHeader: pageHeader}}

		case format.PageType_DATA_PAGE_V2:
			p = &dataPageReaderV2{page: page{pageHeader: pageHeader}}

		default:
			return nil, errors.WithFields(
				errors.New("page type not supported"),
				errors.Fields{"page-type": pageHeader.Type.String()})
		}

		var dictValues []interface{}
		if dictPage != nil {
			dictValues = dictPage.values
		}

		valueDecoderFn := func(enc format.Encoding) (encval.ValuesDecoder, error) {
			dec, err := encval.ForType(*col.Type(), enc, col.TypeLength())
			if err != nil {
				return nil, err
			}

			if dd, ok := dec.(encval.DictValuesDecoder); ok {
				dd.SetValues(dictValues)

				if rd, ok := dec.(encval.RawDictDecoder); ok {
					rd.SetRaw(r.RawDictionary)
				}
			}

			return dec, nil
		}

		if err := p.init(dDecoder, rDecoder, valueDecoderFn); err != nil {
			return nil, err
		}

		if err := p.read(reader, pageHeader, chunkMeta.Codec); err != nil {
			return nil, err
		}

		pages = append(pages, p)
	}

	return pages, nil
}

func checkColumnChunk(chunk *format.ColumnChunk, col *schema.Column) error {
	if chunk.FilePath != nil {
		return errors.WithFields(
			errors.New("data is in another file"),
			errors.Fields{"filepath": *chunk.FilePath})
	}

	if chunk.MetaData == nil {
		return errors.WithFields(
			errors.New("missing meta-data for column"),
			errors.Fields{"column-index": col.Index()})
	}

	if typ := *col.Type(); chunk.MetaData.Type != typ {
		return errors.WithFields(
			errors.New("wrong type in column chunk meta-data"),
			errors.Fields{"expected": typ.String(), "actual": chunk.MetaData.Type.String()})
	}

	return nil
}
