package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/hexbee-net/errors"
)

// Source is a Source backed by a GCS object.
type Source struct {
	object

	size int64
}

// NewSource creates a GCS Source.
func NewSource(ctx context.Context, bucketName, name string) (*Source, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to instantiate GCS client")
	}

	return NewSourceWithClient(ctx, client, bucketName, name)
}

// NewSourceWithClient is the same as NewSource but allows passing your own GCS client.
func NewSourceWithClient(ctx context.Context, client *storage.Client, bucketName, name string) (*Source, error) {
	s := &Source{object: object{Client: client, externalClient: true}}
	s.object.Bucket = client.Bucket(bucketName)
	s.object.Object = s.object.Bucket.Object(name)

	attrs, err := s.object.Object.Attrs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get object attributes")
	}

	s.size = attrs.Size

	return s, nil
}

func (s *Source) Slice(ctx context.Context, start, end int64) ([]byte, error) {
	r, err := s.Object.NewRangeReader(ctx, start, end-start)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open range reader")
	}
	defer func() { _ = r.Close() }()

	buf := make([]byte, end-start)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read object range")
	}

	return buf, nil
}

func (s *Source) Size(context.Context) (int64, error) {
	return s.size, nil
}
