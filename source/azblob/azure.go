// Package azblob reads a Parquet file from an Azure Blob Storage blob.
package azblob

import (
	"context"
	"net/url"

	"github.com/Azure/azure-pipeline-go/pipeline"
	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
)

type blob struct {
	URL          *url.URL
	credential   azblob.Credential
	blockBlobURL *azblob.BlockBlobURL
}

// Options configures the pipeline used to talk to the blob service.
type Options struct {
	HTTPSender   pipeline.Factory
	RetryOptions azblob.RetryOptions
	Log          pipeline.LogOptions
}

func (b *blob) open(ctx context.Context, rawURL string, opts Options) (err error) {
	if b.URL, err = url.Parse(rawURL); err != nil {
		return errors.Wrap(err, "failed to parse URL")
	}

	blobURL := azblob.NewBlockBlobURL(*b.URL, azblob.NewPipeline(b.credential, azblob.PipelineOptions{
		HTTPSender: opts.HTTPSender,
		Retry:      opts.RetryOptions,
		Log:        opts.Log,
	}))

	if _, err := blobURL.GetAccountInfo(ctx); err != nil {
		return errors.Wrap(err, "failed to get account properties")
	}

	b.blockBlobURL = &blobURL

	return nil
}
