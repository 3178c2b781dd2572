package hdfs

import (
	"context"
	"io"

	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
)

// Source is a Source backed by a file in HDFS, read with ReadAt so
// concurrent Slice calls don't race on a shared cursor.
type Source struct {
	file

	reader *hdfs.FileReader
	size   int64
}

// NewSource opens name on the given HDFS name nodes.
func NewSource(hosts []string, user, name string) (*Source, error) {
	client, err := hdfs.NewClient(hdfs.ClientOptions{Addresses: hosts, User: user})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HDFS client")
	}

	return NewSourceWithClient(client, name)
}

// NewSourceWithClient is the same as NewSource but allows passing your own HDFS client.
func NewSourceWithClient(client *hdfs.Client, name string) (*Source, error) {
	s := &Source{file: file{client: client, externalClient: true}}

	r, err := client.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open HDFS file")
	}

	s.reader = r
	s.size = r.Stat().Size()

	return s, nil
}

func (s *Source) Slice(_ context.Context, start, end int64) ([]byte, error) {
	buf := make([]byte, end-start)
	if _, err := io.ReadFull(&sectionReader{s.reader, start}, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read HDFS byte range")
	}

	return buf, nil
}

func (s *Source) Size(context.Context) (int64, error) {
	return s.size, nil
}

func (s *Source) Close() error {
	if s.reader != nil {
		if err := s.reader.Close(); err != nil {
			return errors.Wrap(err, "failed to close HDFS reader")
		}
	}

	return s.file.Close()
}

// sectionReader reads sequentially from off within an io.ReaderAt, letting
// io.ReadFull drive a single Slice-sized read without a manual loop.
type sectionReader struct {
	r   io.ReaderAt
	off int64
}

func (s *sectionReader) Read(p []byte) (int, error) {
	n, err := s.r.ReadAt(p, s.off)
	s.off += int64(n)

	return n, err
}
