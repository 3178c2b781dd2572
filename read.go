package parquet

import (
	"context"

	"github.com/colstream/parquet/assemble"
	"github.com/colstream/parquet/layout"
	"github.com/colstream/parquet/planner"
	"github.com/colstream/parquet/rowgroup"
	"github.com/colstream/parquet/schema"
	"github.com/colstream/parquet/source"
	"github.com/hexbee-net/errors"
	"golang.org/x/sync/errgroup"
)

// Read drives planning, row-group reading, and Dremel assembly for req,
// returning every row in [req.RowStart, req.RowEnd) shaped by
// req.RowFormat. Errors from any column cancel the whole read: partial
// results are never returned, matching §7's "decompression and decoding
// errors are fatal to the whole read".
func Read(ctx context.Context, req *Request) ([]interface{}, error) {
	if req.Source == nil {
		return nil, errors.WithFields(ErrInvalidRequest, errors.Fields{"reason": "request has no Source"})
	}

	meta, err := req.metadata(ctx)
	if err != nil {
		return nil, err
	}

	sch, err := req.schema(meta)
	if err != nil {
		return nil, err
	}

	rowStart, rowEnd := req.rowRange()

	plan, err := planner.Build(meta, sch, rowStart, rowEnd, req.Columns)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidRequest, err.Error())
	}

	cache := source.NewPrefetchCache(req.Source, toSourceRanges(plan.ByteRanges())...)
	cr := &layout.ChunkReader{RawDictionary: req.RawDictionary}

	rowGroupRows := make([][]interface{}, len(plan.RowGroups))

	g, gctx := errgroup.WithContext(ctx)
	if req.MaxConcurrency > 0 {
		g.SetLimit(req.MaxConcurrency)
	}

	for i, rgPlan := range plan.RowGroups {
		i, rgPlan := i, rgPlan

		g.Go(func() error {
			rows, err := readRowGroup(gctx, cr, cache, rgPlan, sch.Root(), req)
			if err != nil {
				return errors.WithFields(err, errors.Fields{"row-group": rgPlan.Index})
			}

			rowGroupRows[i] = rows

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, rows := range rowGroupRows {
		total += len(rows)
	}

	rows := make([]interface{}, 0, total)
	for _, rg := range rowGroupRows {
		rows = append(rows, rg...)
	}

	if req.OnComplete != nil {
		req.OnComplete(rows)
	}

	return rows, nil
}

func readRowGroup(ctx context.Context, cr *layout.ChunkReader, src layout.ByteSource, rgPlan planner.RowGroupPlan, root *schema.Column, req *Request) ([]interface{}, error) {
	onChunk := func(col *schema.Column, arr *rowgroup.Array, rowStart, rowEnd int64) {
		if req.OnChunk == nil {
			return
		}

		req.OnChunk(Chunk{Column: col, Values: arr.Values, RowStart: rowStart, RowEnd: rowEnd})
	}

	results, err := rowgroup.Read(ctx, cr, src, rgPlan, req.MaxConcurrency, req.convertValues, onChunk)
	if err != nil {
		return nil, classifyPageError(err)
	}

	cols := make([]assemble.ColumnSet, len(results))
	for i, r := range results {
		if err := r.Values.Skip(int(rgPlan.SkipRows)); err != nil {
			return nil, errors.Wrap(err, "failed to skip leading rows")
		}

		cols[i] = assemble.ColumnSet{Column: r.Column, Values: r.Values}
	}

	return assemble.BuildRows(root, cols, int(rgPlan.TakeRows), req.RowFormat)
}

func toSourceRanges(ranges []planner.ByteRange) []source.Range {
	out := make([]source.Range, len(ranges))
	for i, r := range ranges {
		out[i] = source.Range{Start: r.Start, End: r.End}
	}

	return out
}
