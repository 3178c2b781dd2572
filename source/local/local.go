// Package local reads a Parquet file off the local filesystem.
package local

import (
	"context"
	"io"
	"os"

	"github.com/hexbee-net/errors"
)

// File is a Source backed by an open local file, read with ReadAt so
// concurrent Slice calls from different goroutines never race on a shared
// cursor.
type File struct {
	file *os.File
	size int64
}

// Open opens path for reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open source file")
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "failed to stat source file")
	}

	return &File{file: f, size: info.Size()}, nil
}

func (f *File) Slice(_ context.Context, start, end int64) ([]byte, error) {
	if start < 0 || end < start || end > f.size {
		return nil, errors.WithFields(
			errors.New("slice out of range"),
			errors.Fields{"start": start, "end": end, "size": f.size})
	}

	buf := make([]byte, end-start)
	if _, err := io.ReadFull(io.NewSectionReader(f.file, start, end-start), buf); err != nil {
		return nil, errors.Wrap(err, "failed to read file range")
	}

	return buf, nil
}

func (f *File) Size(context.Context) (int64, error) {
	return f.size, nil
}

func (f *File) Close() error {
	return f.file.Close()
}
