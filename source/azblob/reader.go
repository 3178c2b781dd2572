package azblob

import (
	"context"
	"io"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
)

// Source is a Source backed by an Azure Blob Storage blob.
type Source struct {
	blob

	size int64
}

// NewSource creates an Azure Blob Source.
func NewSource(ctx context.Context, rawURL string, credential azblob.Credential, opts Options) (*Source, error) {
	s := &Source{blob: blob{credential: credential}}

	if err := s.blob.open(ctx, rawURL, opts); err != nil {
		return nil, err
	}

	props, err := s.blockBlobURL.GetProperties(ctx, azblob.BlobAccessConditions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get blob properties")
	}

	s.size = props.ContentLength()

	return s, nil
}

func (s *Source) Slice(ctx context.Context, start, end int64) ([]byte, error) {
	resp, err := s.blockBlobURL.Download(ctx, start, end-start, azblob.BlobAccessConditions{}, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to download blob range")
	}

	body := resp.Body(azblob.RetryReaderOptions{})
	defer func() { _ = body.Close() }()

	buf := make([]byte, end-start)
	if _, err := io.ReadFull(body, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read blob range")
	}

	return buf, nil
}

func (s *Source) Size(context.Context) (int64, error) {
	return s.size, nil
}
