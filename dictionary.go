package parquet

import (
	"context"

	"github.com/colstream/parquet/layout"
	"github.com/colstream/parquet/schema"
	"github.com/hexbee-net/errors"
)

// ReadDictionary scans req's one requested column's row groups in file
// order and decodes the first dictionary page it finds, converting its
// values the same way Read would. found is false when no row group's chunk
// for this column carries a dictionary page.
func ReadDictionary(ctx context.Context, req *Request) (values []interface{}, found bool, err error) {
	meta, _, col, err := req.singleColumn(ctx)
	if err != nil {
		return nil, false, err
	}

	cr := &layout.ChunkReader{}

	for _, rg := range meta.RowGroups {
		if col.Index() >= len(rg.Columns) {
			return nil, false, errors.WithFields(ErrCorruptMetadata, errors.Fields{"reason": "row group is missing a column chunk", "column": col.FlatName()})
		}

		chunk := rg.Columns[col.Index()]
		if chunk.MetaData == nil || chunk.MetaData.DictionaryPageOffset == nil {
			continue
		}

		values, ok, err := cr.ReadDictionaryPage(ctx, req.Source, col, chunk)
		if err != nil {
			return nil, false, errors.WithFields(classifyPageError(err), errors.Fields{"column": col.FlatName()})
		}

		if !ok {
			continue
		}

		if err := req.convertDictionaryValues(col, values); err != nil {
			return nil, false, err
		}

		return values, true, nil
	}

	return nil, false, nil
}

// ReadDictionaryCount is ReadDictionary without decoding the dictionary
// page body: it parses only the page header and returns its declared value
// count.
func ReadDictionaryCount(ctx context.Context, req *Request) (count int, found bool, err error) {
	meta, _, col, err := req.singleColumn(ctx)
	if err != nil {
		return 0, false, err
	}

	cr := &layout.ChunkReader{}

	for _, rg := range meta.RowGroups {
		if col.Index() >= len(rg.Columns) {
			return 0, false, errors.WithFields(ErrCorruptMetadata, errors.Fields{"reason": "row group is missing a column chunk", "column": col.FlatName()})
		}

		chunk := rg.Columns[col.Index()]
		if chunk.MetaData == nil || chunk.MetaData.DictionaryPageOffset == nil {
			continue
		}

		header, ok, err := cr.ReadDictionaryPageHeader(ctx, req.Source, chunk)
		if err != nil {
			return 0, false, errors.WithFields(classifyPageError(err), errors.Fields{"column": col.FlatName()})
		}

		if !ok {
			continue
		}

		return int(header.NumValues), true, nil
	}

	return 0, false, nil
}

// convertDictionaryValues applies req's converter table unconditionally:
// unlike data-page values, a dictionary's own entries are never raw
// indices, so RawDictionary does not gate this conversion.
func (r *Request) convertDictionaryValues(col *schema.Column, values []interface{}) error {
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
				errors.Wrap(err, "failed to convert dictionary value"),
				errors.Fields{"index": i})
		}

		values[i] = cv
	}

	return nil
}
