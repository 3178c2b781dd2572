// Package encval decodes one page's worth of column values off a physical
// type and Encoding pair. It never writes Parquet: every decoder here only
// implements the read half of its encoding.
package encval

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	errInvalidType = errors.Error("invalid type")
	errNilReader   = errors.Error("reader is nil")
)

// ValuesDecoder turns an already-decompressed page value stream into Go
// values. A short final DecodeValues call may return io.EOF along with the
// count of values it did manage to read; any other error is fatal.
type ValuesDecoder interface {
	Init(io.Reader) error
	DecodeValues(dest []interface{}) (count int, err error)
}

// DictValuesDecoder is a ValuesDecoder that resolves dictionary indices
// against a set of values supplied out of band.
type DictValuesDecoder interface {
	ValuesDecoder

	SetValues([]interface{})
}

// RawDictDecoder is implemented by dictionary decoders that can bypass
// index resolution and hand back the raw indices, for the request option
// rawDictionary.
type RawDictDecoder interface {
	SetRaw(bool)
}
