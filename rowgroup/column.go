// Package rowgroup wires the layout package's page reader and decoder to
// one row group's column chunks, exposing each selected column as a lazy,
// pull-based sequence of decoded arrays.
package rowgroup

import (
	"context"

	"github.com/colstream/parquet/format"
	"github.com/colstream/parquet/layout"
	"github.com/colstream/parquet/schema"
	"github.com/hexbee-net/errors"
)

type arrayResult struct {
	arr *Array
	err error
}

// Column is a lazy sequence of decoded Arrays for one column chunk.
// ReadChunk has already fetched and decompressed every page of the chunk;
// a background goroutine decodes each page's levels and values and hands
// them off one at a time through a channel that holds one decoded page.
type Column struct {
	col *schema.Column
	ch  chan arrayResult
}

// OpenColumn fetches chunk's page list and starts decoding it in the
// background. startRow is the file-global row index of the chunk's first
// row, used to stamp each emitted Array.
func OpenColumn(ctx context.Context, cr *layout.ChunkReader, src layout.ByteSource, col *schema.Column, chunk *format.ColumnChunk, startRow int64) (*Column, error) {
	pages, err := cr.ReadChunk(ctx, src, col, chunk)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to open column chunk"),
			errors.Fields{"column": col.FlatName()})
	}

	c := &Column{col: col, ch: make(chan arrayResult, 1)}

	go c.run(ctx, pages, startRow)

	return c, nil
}

func (c *Column) run(ctx context.Context, pages []layout.PageReader, startRow int64) {
	defer close(c.ch)

	row := startRow

	for _, p := range pages {
		data := make([]interface{}, p.NumValues())

		n, notNull, dLevel, rLevel, err := p.ReadValues(data)
		if err != nil {
			c.emit(ctx, arrayResult{err: errors.WithFields(
				errors.Wrap(err, "failed to decode page"),
				errors.Fields{"column": c.col.FlatName()})})

			return
		}

		if int32(n) != p.NumValues() {
			c.emit(ctx, arrayResult{err: errors.WithFields(
				errors.New("page yielded fewer values than its header declared"),
				errors.Fields{"column": c.col.FlatName(), "expected": p.NumValues(), "actual": n})})

			return
		}

		arr := &Array{Values: data[:notNull], Defs: dLevel, Reps: rLevel, StartRow: row}
		row += int64(n)

		if !c.emit(ctx, arrayResult{arr: arr}) {
			return
		}
	}
}

func (c *Column) emit(ctx context.Context, res arrayResult) bool {
	select {
	case c.ch <- res:
		return true
	case <-ctx.Done():
		return false
	}
}

// Next pulls the column's next decoded page. ok is false once the column is
// exhausted.
func (c *Column) Next(ctx context.Context) (arr *Array, ok bool, err error) {
	select {
	case res, open := <-c.ch:
		if !open {
			return nil, false, nil
		}

		if res.err != nil {
			return nil, false, res.err
		}

		return res.arr, true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}
