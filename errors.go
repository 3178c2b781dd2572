package parquet

import (
	"github.com/colstream/parquet/compression"
	"github.com/hexbee-net/errors"
)

// Sentinel errors identifying the error kinds a read can fail with.
// Wrap one of these with errors.WithFields/errors.Wrap for context; the
// sentinel stays reachable through errors.Cause for callers that branch on
// failure kind.
var (
	// ErrInvalidRequest covers a multi-column request where one column is
	// required, a missing column, or an out-of-range row span.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCorruptMetadata covers an unreadable footer or a malformed schema.
	ErrCorruptMetadata = errors.New("corrupt metadata")

	// ErrCorruptPage covers an unparsable page header, a decompressed size
	// mismatch, a level stream that overruns its page body, or an unknown
	// encoding.
	ErrCorruptPage = errors.New("corrupt page")

	// ErrUnsupportedFeature covers a codec with no configured decompressor.
	// Encrypted files are not detected, and a logical type with no converter
	// passes its values through unconverted instead of raising this error.
	ErrUnsupportedFeature = errors.New("unsupported feature")

	// ErrByteSource wraps an error propagated from the underlying Source.
	ErrByteSource = errors.New("byte source error")
)

// classifyPageError wraps an error surfaced from the layout/rowgroup page
// pipeline with the sentinel Kind should report for it: ErrUnsupportedFeature
// for a codec with no configured decompressor, ErrCorruptPage for everything
// else a page or dictionary read can fail with (bad header, size mismatch,
// unknown encoding, truncated level stream). Layout and rowgroup cannot
// reference these sentinels themselves without an import cycle, so
// classification happens here, at the boundary where their errors cross
// into the public API.
func classifyPageError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Cause(err) == compression.ErrUnsupportedCodec {
		return errors.Wrap(ErrUnsupportedFeature, err.Error())
	}

	return errors.Wrap(ErrCorruptPage, err.Error())
}

// Kind reports which of the sentinel errors above caused err, or false if
// err is nil or was not built from one of them.
func Kind(err error) (error, bool) {
	if err == nil {
		return nil, false
	}

	cause := errors.Cause(err)

	for _, k := range []error{ErrInvalidRequest, ErrCorruptMetadata, ErrCorruptPage, ErrUnsupportedFeature, ErrByteSource} {
		if cause == k {
			return k, true
		}
	}

	return nil, false
}
