// Package source fetches byte ranges of a Parquet file from wherever it
// lives: local disk, HTTP, or a cloud object store. Every backend exposes
// the same Source contract so the rest of the module never branches on
// where the bytes came from.
package source

import "context"

// Source fetches byte ranges of a file addressed purely by offset, so the
// planner can turn a read request into a handful of independent range
// fetches run concurrently.
type Source interface {
	// Slice returns the bytes in [start, end). Implementations must not
	// return fewer bytes than requested short of returning an error.
	Slice(ctx context.Context, start, end int64) ([]byte, error)

	// Size returns the total size of the file in bytes.
	Size(ctx context.Context) (int64, error)
}
