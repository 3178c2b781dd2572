// Package memory reads a Parquet file already held in memory, and provides
// a Writer for assembling one (used by tests to build fixtures in-process).
package memory

import (
	"bytes"
	"context"

	"github.com/hexbee-net/errors"
)

// Writer accumulates bytes in memory. It has no role in reading a Parquet
// file; it exists so tests can build a fixture without touching disk.
type Writer struct {
	bytes.Buffer
}

// NewWriter creates a Writer, optionally seeded with buf.
func NewWriter(buf []byte) *Writer {
	return &Writer{Buffer: *bytes.NewBuffer(buf)}
}

func (w *Writer) Close() error {
	return nil
}

// Source is a Source backed by an in-memory byte slice.
type Source struct {
	data []byte
}

// NewSource wraps data as a Source. data is not copied; callers must not
// mutate it afterward.
func NewSource(data []byte) *Source {
	return &Source{data: data}
}

func (s *Source) Slice(_ context.Context, start, end int64) ([]byte, error) {
	if start < 0 || end < start || end > int64(len(s.data)) {
		return nil, errors.WithFields(
			errors.New("slice out of range"),
			errors.Fields{"start": start, "end": end, "size": len(s.data)})
	}

	return s.data[start:end], nil
}

func (s *Source) Size(context.Context) (int64, error) {
	return int64(len(s.data)), nil
}
