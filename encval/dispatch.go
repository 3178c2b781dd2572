package encval

import (
	"github.com/colstream/parquet/format"
	"github.com/hexbee-net/errors"
)

// ErrUnsupportedEncoding is returned by ForType when a physical
// type/encoding pair has no decoder, e.g. DELTA_BYTE_ARRAY on an INT32
// column.
var ErrUnsupportedEncoding = errors.New("unsupported type/encoding combination")

// ForType returns the decoder for a data page's physical type, encoding,
// and (for FIXED_LEN_BYTE_ARRAY) element width. PLAIN_DICTIONARY is
// normalized to RLE_DICTIONARY, the two being wire-compatible.
func ForType(typ format.Type, encoding format.Encoding, typeLength int32) (ValuesDecoder, error) {
	if encoding == format.Encoding_PLAIN_DICTIONARY {
		encoding = format.Encoding_RLE_DICTIONARY
	}

	switch typ {
	case format.Type_BOOLEAN:
		switch encoding {
		case format.Encoding_PLAIN:
			return &BooleanPlainDecoder{}, nil
		case format.Encoding_RLE:
			return &BooleanRLEDecoder{}, nil
		case format.Encoding_RLE_DICTIONARY:
			return &DictDecoder{}, nil
		}

	case format.Type_INT32:
		switch encoding {
		case format.Encoding_PLAIN:
			return &Int32PlainDecoder{}, nil
		case format.Encoding_DELTA_BINARY_PACKED:
			return &Int32DeltaBPDecoder{}, nil
		case format.Encoding_BYTE_STREAM_SPLIT:
			return NewInt32ByteStreamSplitDecoder(), nil
		case format.Encoding_RLE_DICTIONARY:
			return &DictDecoder{}, nil
		}

	case format.Type_INT64:
		switch encoding {
		case format.Encoding_PLAIN:
			return &Int64PlainDecoder{}, nil
		case format.Encoding_DELTA_BINARY_PACKED:
			return &Int64DeltaBPDecoder{}, nil
		case format.Encoding_BYTE_STREAM_SPLIT:
			return NewInt64ByteStreamSplitDecoder(), nil
		case format.Encoding_RLE_DICTIONARY:
			return &DictDecoder{}, nil
		}

	case format.Type_INT96:
		switch encoding {
		case format.Encoding_PLAIN:
			return &Int96PlainDecoder{}, nil
		case format.Encoding_RLE_DICTIONARY:
			return &DictDecoder{}, nil
		}

	case format.Type_FLOAT:
		switch encoding {
		case format.Encoding_PLAIN:
			return &FloatPlainDecoder{}, nil
		case format.Encoding_BYTE_STREAM_SPLIT:
			return NewFloatByteStreamSplitDecoder(), nil
		case format.Encoding_RLE_DICTIONARY:
			return &DictDecoder{}, nil
		}

	case format.Type_DOUBLE:
		switch encoding {
		case format.Encoding_PLAIN:
			return &DoublePlainDecoder{}, nil
		case format.Encoding_BYTE_STREAM_SPLIT:
			return NewDoubleByteStreamSplitDecoder(), nil
		case format.Encoding_RLE_DICTIONARY:
			return &DictDecoder{}, nil
		}

	case format.Type_BYTE_ARRAY:
		switch encoding {
		case format.Encoding_PLAIN:
			return &ByteArrayPlainDecoder{}, nil
		case format.Encoding_DELTA_LENGTH_BYTE_ARRAY:
			return &ByteArrayDeltaLengthDecoder{}, nil
		case format.Encoding_DELTA_BYTE_ARRAY:
			return &ByteArrayDeltaDecoder{}, nil
		case format.Encoding_RLE_DICTIONARY:
			return &DictDecoder{}, nil
		}

	case format.Type_FIXED_LEN_BYTE_ARRAY:
		switch encoding {
		case format.Encoding_PLAIN:
			return &ByteArrayPlainDecoder{Length: int(typeLength)}, nil
		case format.Encoding_DELTA_BYTE_ARRAY:
			return &ByteArrayDeltaDecoder{}, nil
		case format.Encoding_BYTE_STREAM_SPLIT:
			return NewFixedLenByteStreamSplitDecoder(int(typeLength)), nil
		case format.Encoding_RLE_DICTIONARY:
			return &DictDecoder{}, nil
		}
	}

	return nil, errors.WithFields(ErrUnsupportedEncoding, errors.Fields{
		"type":     typ.String(),
		"encoding": encoding.String(),
	})
}

// ForDictionaryPage returns the PLAIN decoder used for a DICTIONARY_PAGE's
// own values, keyed purely on physical type (dictionary pages are always
// PLAIN-encoded).
func ForDictionaryPage(typ format.Type, typeLength int32) (ValuesDecoder, error) {
	switch typ {
	case format.Type_BOOLEAN:
		return &BooleanPlainDecoder{}, nil
	case format.Type_INT32:
		return &Int32PlainDecoder{}, nil
	case format.Type_INT64:
		return &Int64PlainDecoder{}, nil
	case format.Type_INT96:
		return &Int96PlainDecoder{}, nil
	case format.Type_FLOAT:
		return &FloatPlainDecoder{}, nil
	case format.Type_DOUBLE:
		return &DoublePlainDecoder{}, nil
	case format.Type_BYTE_ARRAY:
		return &ByteArrayPlainDecoder{}, nil
	case format.Type_FIXED_LEN_BYTE_ARRAY:
		return &ByteArrayPlainDecoder{Length: int(typeLength)}, nil
	default:
		return nil, errors.WithFields(ErrUnsupportedEncoding, errors.Fields{"type": typ.String()})
	}
}
