// Package parquet reads the Parquet columnar file format from an abstract
// byte-addressable Source, delivering decoded values through four
// entry points: Read, ReadColumn, ReadDictionary, and ReadDictionaryCount.
//
// The read pipeline is a planner that turns a row/column request into byte
// ranges (package planner), a prefetch cache that coalesces those ranges
// into a handful of Slice calls (package source), a page reader and decoder
// that turn compressed page bytes into typed values plus their
// repetition/definition levels (packages layout and encval), and an
// assembler that reconstructs nested records from those level streams
// (package assemble). This package wires them together behind the request
// shape a caller sees.
package parquet

import (
	"context"
	"fmt"

	"github.com/colstream/parquet/assemble"
	"github.com/colstream/parquet/convert"
	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/schema"
	"github.com/colstream/parquet/source"
	"github.com/hexbee-net/errors"
)

// RowFormat selects the shape Read assembles rows into.
type RowFormat = assemble.RowFormat

const (
	// RowFormatArray produces a positional tuple over the requested columns.
	RowFormatArray = assemble.RowFormatArray
	// RowFormatObject produces a map keyed by the schema's field names.
	RowFormatObject = assemble.RowFormatObject
)

// Chunk is the argument passed to a Request's OnChunk callback: one
// decoded page for one column, with its row range in the file.
type Chunk struct {
	Column   *schema.Column
	Values   []interface{}
	RowStart int64
	RowEnd   int64
}

// Request configures a Read, ReadColumn, ReadDictionary, or
// ReadDictionaryCount call.
type Request struct {
	// Source supplies the file's bytes. Required.
	Source source.Source

	// Metadata reuses an already-parsed footer, skipping ReadMetadata.
	// When nil, it is fetched from Source.
	Metadata *format.FileMetaData

	// Columns restricts decoding to the named leaves (dotted paths) or
	// their enclosing groups. Empty means every column.
	Columns []string

	// RowStart and RowEnd bound the row range read, RowEnd exclusive.
	// RowEnd of 0 with RowStart of 0 (the zero value) means the whole file;
	// set RowEnd to -1 explicitly to mean "through the last row" alongside
	// a non-zero RowStart.
	RowStart int64
	RowEnd   int64

	// RowFormat selects Read's row shape. Zero value is RowFormatArray.
	RowFormat RowFormat

	// RawDictionary, for a dictionary-encoded column, yields the integer
	// indices instead of resolving them against the chunk's dictionary.
	RawDictionary bool

	// Parsers overrides the default logical-type converters, keyed by
	// convert.Kind. A Kind absent here and with no built-in default
	// (INTERVAL, JSON, BSON) passes its physical value through unconverted.
	Parsers map[convert.Kind]convert.Converter

	// UTF8 gates the default STRING conversion: true (the value NewRequest
	// sets; the Request zero value is false) decodes BYTE_ARRAY to string,
	// false leaves it as []byte. Use NewRequest to get the documented
	// default explicitly.
	UTF8 bool

	// MaxConcurrency bounds how many columns of one row group decode at
	// once (0 means unbounded) and how many row groups run concurrently.
	MaxConcurrency int

	// OnChunk, when set, is called once per decoded page, in page order
	// within a column, with monotonically non-decreasing RowStart. Across
	// columns no ordering is guaranteed. OnChunk has no error return: it
	// is fire-and-forget and cannot fail or cancel the read.
	OnChunk func(Chunk)

	// OnComplete, when set, is called once with the fully assembled rows
	// immediately before Read returns them. It never fires when Read
	// returns an error: partial results are not surfaced on failure.
	OnComplete func([]interface{})
}

// NewRequest builds a Request against src with the documented defaults:
// UTF8 conversion on, every row and column, array row shape.
func NewRequest(src source.Source) *Request {
	return &Request{
		Source:   src,
		RowStart: 0,
		RowEnd:   -1,
		UTF8:     true,
	}
}

func (r *Request) metadata(ctx context.Context) (*format.FileMetaData, error) {
	if r.Metadata != nil {
		return r.Metadata, nil
	}

	meta, err := ReadMetadata(ctx, r.Source)
	if err != nil {
		return nil, err
	}

	r.Metadata = meta

	return meta, nil
}

func (r *Request) schema(meta *format.FileMetaData) (*schema.Schema, error) {
	if len(meta.Schema) < 1 {
		return nil, errors.WithFields(ErrCorruptMetadata, errors.Fields{"reason": "empty schema element list"})
	}

	s, err := schema.LoadSchema(meta.Schema)
	if err != nil {
		return nil, errors.Wrap(ErrCorruptMetadata, err.Error())
	}

	return s, nil
}

// rowRange resolves RowStart/RowEnd into the half-open range planner.Build
// expects, treating the Request zero value (both fields unset) as the
// whole file.
func (r *Request) rowRange() (start, end int64) {
	start, end = r.RowStart, r.RowEnd
	if start == 0 && end == 0 {
		end = -1
	}

	return start, end
}

// singleColumn resolves the one leaf column an operation requiring exactly
// one column (ReadColumn, ReadDictionary, ReadDictionaryCount) needs.
func (r *Request) singleColumn(ctx context.Context) (*format.FileMetaData, *schema.Schema, *schema.Column, error) {
	if len(r.Columns) != 1 {
		return nil, nil, nil, errors.WithFields(
			ErrInvalidRequest,
			errors.Fields{"reason": "exactly one column is required", "columns": len(r.Columns)})
	}

	meta, err := r.metadata(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	sch, err := r.schema(meta)
	if err != nil {
		return nil, nil, nil, err
	}

	col := sch.GetColumnByName(r.Columns[0])
	if col == nil {
		return nil, nil, nil, errors.Wrap(ErrInvalidRequest, fmt.Sprintf("Column '%s' not found", r.Columns[0]))
	}

	return meta, sch, col, nil
}

func (r *Request) converter(col *schema.Column) (convert.Converter, bool) {
	table := convert.NewTable(convert.Options{UTF8: r.UTF8, Overrides: r.Parsers})

	conv, _, ok := table.ForColumn(col)

	return conv, ok
}

// convertValues rewrites values in place using r's converter table, unless
// rawDictionary short-circuited physical decoding to raw integer indices,
// in which case logical conversion does not apply.
func (r *Request) convertValues(col *schema.Column, values []interface{}) error {
	if r.RawDictionary {
		return nil
	}

	conv, ok := r.converter(col)
	if !ok {
		return nil
	}

	for i, v := range values {
		if v == nil {
			continue
		}

		cv, err := conv(v)
		if err != nil {
			return errors.WithFields(
				errors.Wrap(err, "failed to convert value"),
				errors.Fields{"column": col.FlatName(), "index": i})
		}

		values[i] = cv
	}

	return nil
}
