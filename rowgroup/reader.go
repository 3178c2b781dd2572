package rowgroup

import (
	"context"

	"github.com/colstream/parquet/assemble"
	"github.com/colstream/parquet/layout"
	"github.com/colstream/parquet/planner"
	"github.com/colstream/parquet/schema"
	"github.com/hexbee-net/errors"
	"golang.org/x/sync/errgroup"
)

// ChunkCallback is invoked once per decoded page, in page order within a
// column, as each column chunk in a row group is drained. Columns drain
// concurrently, so calls for different columns may interleave and come
// from different goroutines.
type ChunkCallback func(col *schema.Column, arr *Array, rowStart, rowEnd int64)

// ValueConverter rewrites a page's decoded values in place into their
// logical representation, e.g. BYTE_ARRAY into a UTF-8 string. It runs
// before the values reach ChunkCallback or are accumulated for assembly.
type ValueConverter func(col *schema.Column, values []interface{}) error

// ColumnResult is one selected column's fully drained values for a row
// group, ready for assembly.
type ColumnResult struct {
	Column *schema.Column
	Values *assemble.ColumnValues
}

// Read drains every column chunk named in plan, running up to
// maxConcurrency columns at once (0 means unbounded). convert, when
// non-nil, rewrites each page's values before they are kept or delivered.
// onChunk, when non-nil, is called for every decoded page.
func Read(ctx context.Context, cr *layout.ChunkReader, src layout.ByteSource, plan planner.RowGroupPlan, maxConcurrency int, convert ValueConverter, onChunk ChunkCallback) ([]ColumnResult, error) {
	results := make([]ColumnResult, len(plan.Columns))

	g, gctx := errgroup.WithContext(ctx)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i, cc := range plan.Columns {
		i, cc := i, cc

		g.Go(func() error {
			values, err := drainColumn(gctx, cr, src, cc, plan.FileRowOffset, convert, onChunk)
			if err != nil {
				return errors.WithFields(err, errors.Fields{"column": cc.Column.FlatName()})
			}

			results[i] = ColumnResult{Column: cc.Column, Values: values}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func drainColumn(ctx context.Context, cr *layout.ChunkReader, src layout.ByteSource, cc planner.ColumnChunkPlan, startRow int64, convert ValueConverter, onChunk ChunkCallback) (*assemble.ColumnValues, error) {
	column, err := OpenColumn(ctx, cr, src, cc.Column, cc.Chunk, startRow)
	if err != nil {
		return nil, err
	}

	values := assemble.NewColumnValues(cc.Column.MaxDefinitionLevel(), cc.Column.MaxRepetitionLevel())

	for {
		arr, ok, err := column.Next(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if !ok {
			break
		}

		if convert != nil {
			if err := convert(cc.Column, arr.Values); err != nil {
				return nil, errors.WithFields(
					errors.Wrap(err, "failed to convert page values"),
					errors.Fields{"column": cc.Column.FlatName()})
			}
		}

		if err := values.Append(arr.Reps, arr.Defs, arr.Values, len(arr.Values)); err != nil {
			return nil, errors.WithStack(err)
		}

		if onChunk != nil {
			onChunk(cc.Column, arr, arr.StartRow, arr.StartRow+int64(arr.Defs.Len()))
		}
	}

	return values, nil
}
