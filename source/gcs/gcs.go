// Package gcs reads a Parquet file from a Google Cloud Storage object.
package gcs

import (
	"cloud.google.com/go/storage"
)

type object struct {
	Client *storage.Client
	Bucket *storage.BucketHandle
	Object *storage.ObjectHandle

	externalClient bool
}

func (o *object) Close() error {
	if o.Client != nil && !o.externalClient {
		err := o.Client.Close()
		o.Client = nil

		return err
	}

	return nil
}
