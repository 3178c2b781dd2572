// Package planner turns a row range and column selection into the minimal
// set of row groups and column chunks that need to be fetched and decoded
// to satisfy a read request.
package planner

import (
	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/schema"
	"github.com/hexbee-net/errors"
)

// ColumnChunkPlan pairs a selected leaf column with its chunk metadata
// inside one row group.
type ColumnChunkPlan struct {
	Column *schema.Column
	Chunk  *format.ColumnChunk
}

// RowGroupPlan is the work for one overlapping row group: which of its rows
// fall inside the request, and which of its column chunks need reading.
type RowGroupPlan struct {
	Index int

	// FileRowOffset is the row index, counted from the start of the file,
	// of this row group's first row.
	FileRowOffset int64
	NumRows       int64

	// SkipRows and TakeRows bound the rows of this row group that fall
	// inside the request, as an offset and count relative to the row
	// group's own first row.
	SkipRows int64
	TakeRows int64

	Columns []ColumnChunkPlan
}

// Plan is the full set of row groups and column chunks a read request needs.
type Plan struct {
	RowGroups []RowGroupPlan
}

// Build plans a read of rows [rowStart, rowEnd) restricted to the columns
// named in selected (nil or empty selects every column). rowEnd of -1 means
// "through the end of the file".
func Build(meta *format.FileMetaData, sch *schema.Schema, rowStart, rowEnd int64, selected []string) (*Plan, error) {
	if rowStart < 0 {
		return nil, errors.WithFields(errors.New("rowStart must be non-negative"), errors.Fields{"rowStart": rowStart})
	}

	if rowEnd < 0 {
		rowEnd = meta.NumRows
	}

	if rowEnd < rowStart {
		return nil, errors.WithFields(
			errors.New("rowEnd precedes rowStart"),
			errors.Fields{"rowStart": rowStart, "rowEnd": rowEnd})
	}

	cols := sch.Columns()

	// Column order follows the request's column list (tie-break rule);
	// selecting all columns falls back to on-disk schema order.
	var selectedCols []*schema.Column

	if len(selected) == 0 {
		selectedCols = cols
	} else {
		seen := make(map[int]bool, len(cols))

		for _, pattern := range selected {
			for _, c := range cols {
				if seen[c.Index()] || !schema.IsSelected(c.FlatName(), []string{pattern}) {
					continue
				}

				selectedCols = append(selectedCols, c)
				seen[c.Index()] = true
			}
		}
	}

	plan := &Plan{}

	var fileOffset int64

	for idx, rg := range meta.RowGroups {
		rgStart := fileOffset
		rgEnd := fileOffset + rg.NumRows
		fileOffset = rgEnd

		if rgEnd <= rowStart || rgStart >= rowEnd {
			continue
		}

		skip := int64(0)
		if rowStart > rgStart {
			skip = rowStart - rgStart
		}

		take := rg.NumRows - skip
		if over := rgEnd - rowEnd; over > 0 {
			take -= over
		}

		rgPlan := RowGroupPlan{
			Index:         idx,
			FileRowOffset: rgStart,
			NumRows:       rg.NumRows,
			SkipRows:      skip,
			TakeRows:      take,
		}

		for _, c := range selectedCols {
			if c.Index() >= len(rg.Columns) {
				return nil, errors.WithFields(
					errors.New("row group is missing a column chunk"),
					errors.Fields{"row-group": idx, "column": c.FlatName()})
			}

			rgPlan.Columns = append(rgPlan.Columns, ColumnChunkPlan{
				Column: c,
				Chunk:  rg.Columns[c.Index()],
			})
		}

		plan.RowGroups = append(plan.RowGroups, rgPlan)
	}

	return plan, nil
}

// ByteRange is a half-open byte range [Start, End) one selected column
// chunk occupies in the file.
type ByteRange struct {
	Start, End int64
}

// ByteRanges returns the byte range of every selected column chunk in the
// plan, one per ColumnChunkPlan, in plan order. A prefetch cache built from
// the union of these ranges covers exactly the bytes a full walk of the
// plan will read: no selected column's bytes are skipped and no
// unselected column's bytes are fetched.
func (p *Plan) ByteRanges() []ByteRange {
	var ranges []ByteRange

	for _, rg := range p.RowGroups {
		for _, cc := range rg.Columns {
			start := cc.Chunk.MetaData.DataPageOffset
			if cc.Chunk.MetaData.DictionaryPageOffset != nil {
				start = *cc.Chunk.MetaData.DictionaryPageOffset
			}

			ranges = append(ranges, ByteRange{Start: start, End: start + cc.Chunk.MetaData.TotalCompressedSize})
		}
	}

	return ranges
}
