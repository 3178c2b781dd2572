// Package levels decodes the RLE/bit-packed hybrid repetition/definition
// level streams and the DELTA_BINARY_PACKED integer encoding used by
// INT32/INT64 value streams.
package levels

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	errNilReader             = errors.Error("reader is nil")
	errInvalidBlockSize      = errors.Error("invalid block size")
	errInvalidMiniblockCount = errors.Error("invalid mini block count")
)

// Decoder produces a stream of int32 values one at a time. Level streams
// and DELTA_BINARY_PACKED-encoded INT32 columns both implement it.
type Decoder interface {
	Init(io.Reader) error
	InitSize(io.Reader) error

	Next() (int32, error)
}

// ConstDecoder always returns the same value; used for a level stream when
// the owning field's max level is zero, so there is nothing to read off the
// wire.
type ConstDecoder int32

func (d ConstDecoder) Init(_ io.Reader) error     { return nil }
func (d ConstDecoder) InitSize(_ io.Reader) error { return nil }
func (d ConstDecoder) Next() (int32, error)       { return int32(d), nil }
