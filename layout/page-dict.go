package layout

import (
	"github.com/colstream/parquet/encval"
	"github.com/colstream/parquet/format"
	"github.com/hexbee-net/errors"
)

// dictPageReader reads a column chunk's single DICTIONARY_PAGE. Its decoded
// values are kept by the ChunkReader and wired into every data page's
// DictDecoder for the rest of the chunk.
type dictPageReader struct {
	page

	values []interface{}
}

func (r *dictPageReader) init(decoder encval.ValuesDecoder) error {
	if decoder == nil {
		return errors.New("dictionary page without dictionary value decoder")
	}

	r.valuesDecoder = decoder

	return nil
}

func (r *dictPageReader) read(reader *offsetReader, pageHeader *format.PageHeader, codec format.CompressionCodec) error {
	if pageHeader.DictionaryPageHeader == nil {
		return errors.New("missing dictionary page header")
	}

	if pageHeader.DictionaryPageHeader.NumValues < 0 {
		return errors.WithFields(
			errors.New("negative NumValues in DICTIONARY_PAGE"),
			errors.Fields{"num-values": pageHeader.DictionaryPageHeader.NumValues})
	}

	if pageHeader.DictionaryPageHeader.Encoding != format.Encoding_PLAIN && pageHeader.DictionaryPageHeader.Encoding != format.Encoding_PLAIN_DICTIONARY {
		return errors.WithFields(
			errors.New("only PLAIN and PLAIN_DICTIONARY are supported for dictionary page values"),
			errors.Fields{"encoding": pageHeader.DictionaryPageHeader.Encoding.String()})
	}

	r.valuesCount = pageHeader.DictionaryPageHeader.NumValues
	r.pageHeader = pageHeader

	dataReader, err := r.readPageBlock(reader, codec, pageHeader.CompressedPageSize, pageHeader.UncompressedPageSize)
	if err != nil {
		return err
	}

	r.values = make([]interface{}, r.valuesCount)

	if err := r.valuesDecoder.Init(dataReader); err != nil {
		return errors.WithStack(err)
	}

	if n, err := r.valuesDecoder.DecodeValues(r.values); err != nil {
		return errors.WithFields(
			errors.New("unexpected number of dictionary values"),
			errors.Fields{"expected": r.valuesCount, "actual": n})
	}

	return nil
}
