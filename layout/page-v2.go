package layout

import (
	"bytes"
	"io"

	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/levels"
	"github.com/hexbee-net/errors"
)

// dataPageReaderV2 reads a DATA_PAGE_V2: the level streams are always
// uncompressed and sized exactly by the header's ByteLength fields, ahead of
// a (possibly compressed) value stream.
type dataPageReaderV2 struct {
	page

	encoding          format.Encoding
	definitionDecoder levelDecoder
	repetitionDecoder levelDecoder
	valueDecoderFn    getValueDecoderFn
	position          int
}

func (r *dataPageReaderV2) init(dDecoder, rDecoder getLevelDecoderFn, valueDecoderFn getValueDecoderFn) (err error) {
	// V2 levels have no per-page encoding field: they're always RLE.
	r.definitionDecoder, err = dDecoder(format.Encoding_RLE)
	if err != nil {
		return errors.WithStack(err)
	}

	r.repetitionDecoder, err = rDecoder(format.Encoding_RLE)
	if err != nil {
		return errors.WithStack(err)
	}

	r.valueDecoderFn = valueDecoderFn
	r.position = 0

	return nil
}

func (r *dataPageReaderV2) read(reader *offsetReader, pageHeader *format.PageHeader, codec format.CompressionCodec) (err error) {
	if pageHeader.DataPageHeaderV2 == nil {
		return errors.New("missing data page header")
	}

	if r.valuesCount = pageHeader.DataPageHeaderV2.NumValues; r.valuesCount < 0 {
		return errors.WithFields(
			errors.New("negative NumValues in DATA_PAGE_V2"),
			errors.Fields{"num-values": r.valuesCount})
	}

	if pageHeader.DataPageHeaderV2.RepetitionLevelsByteLength < 0 {
		return errors.WithFields(
			errors.New("invalid RepetitionLevelsByteLength"),
			errors.Fields{"value": pageHeader.DataPageHeaderV2.RepetitionLevelsByteLength})
	}

	if pageHeader.DataPageHeaderV2.DefinitionLevelsByteLength < 0 {
		return errors.WithFields(
			errors.New("invalid DefinitionLevelsByteLength"),
			errors.Fields{"value": pageHeader.DataPageHeaderV2.DefinitionLevelsByteLength})
	}

	r.encoding = pageHeader.DataPageHeaderV2.Encoding
	r.pageHeader = pageHeader

	if r.valuesDecoder, err = r.valueDecoderFn(r.encoding); err != nil {
		return err
	}

	levelsSize := pageHeader.DataPageHeaderV2.RepetitionLevelsByteLength + pageHeader.DataPageHeaderV2.DefinitionLevelsByteLength

	if levelsSize > 0 {
		data := make([]byte, levelsSize)
		if n, err := io.ReadFull(reader, data); err != nil {
			return errors.Wrapf(err, "need to read %d bytes but there was only %d", levelsSize, n)
		}

		if pageHeader.DataPageHeaderV2.RepetitionLevelsByteLength > 0 {
			if err := r.repetitionDecoder.Init(bytes.NewReader(data[:pageHeader.DataPageHeaderV2.RepetitionLevelsByteLength])); err != nil {
				return errors.Wrap(err, "failed to initialize repetition decoder")
			}
		}

		if pageHeader.DataPageHeaderV2.DefinitionLevelsByteLength > 0 {
			if err := r.definitionDecoder.Init(bytes.NewReader(data[pageHeader.DataPageHeaderV2.RepetitionLevelsByteLength:])); err != nil {
				return errors.Wrap(err, "failed to initialize definition decoder")
			}
		}
	}

	uncompressedSize := pageHeader.UncompressedPageSize - levelsSize
	compressedSize := pageHeader.CompressedPageSize - levelsSize

	var dataReader io.Reader
	if pageHeader.DataPageHeaderV2.IsCompressed {
		dataReader, err = r.readPageBlock(reader, codec, compressedSize, uncompressedSize)
	} else {
		buf := make([]byte, compressedSize)
		if _, err = io.ReadFull(reader, buf); err == nil {
			dataReader = bytes.NewReader(buf)
		}
	}

	if err != nil {
		return err
	}

	return r.valuesDecoder.Init(dataReader)
}

func (r *dataPageReaderV2) ReadValues(values []interface{}) (n, notNull int, dLevel *levels.PackedArray, rLevel *levels.PackedArray, err error) {
	size := len(values)
	if rem := int(r.valuesCount) - r.position; rem < size {
		size = rem
	}

	if size == 0 {
		return 0, 0, nil, nil, nil
	}

	rLevel, _, err = decodePackedArray(r.repetitionDecoder, size)
	if err != nil {
		return 0, 0, nil, nil, errors.Wrap(err, "read repetition levels failed")
	}

	dLevel, notNull, err = decodePackedArray(r.definitionDecoder, size)
	if err != nil {
		return 0, 0, nil, nil, errors.Wrap(err, "read definition levels failed")
	}

	if notNull != 0 {
		if n, err := r.valuesDecoder.DecodeValues(values[:notNull]); err != nil {
			return 0, 0, nil, nil, errors.WithFields(
				errors.New("read values from page failed"),
				errors.Fields{"expected": notNull, "actual": n})
		}
	}

	r.position += size

	return size, notNull, dLevel, rLevel, nil
}

func (r *dataPageReaderV2) NumValues() int32 {
	return r.valuesCount
}
