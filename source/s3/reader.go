package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/hexbee-net/errors"
)

const rangeHeader = "bytes=%d-%d"

// Source is a Source backed by an S3 object.
type Source struct {
	object

	size int64
}

// NewSource creates an S3 Source.
func NewSource(ctx context.Context, bucket, key string, configProvider client.ConfigProvider, configs ...*aws.Config) (*Source, error) {
	return NewSourceWithClient(ctx, s3.New(configProvider, configs...), bucket, key)
}

// NewSourceWithClient is the same as NewSource but allows passing your own S3 client.
func NewSourceWithClient(ctx context.Context, s3Client s3iface.S3API, bucket, key string) (*Source, error) {
	src := &Source{object: object{client: s3Client, BucketName: bucket, Key: key}}

	head, err := s3Client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch object description")
	}

	if head.ContentLength != nil {
		src.size = *head.ContentLength
	}

	return src, nil
}

func (s *Source) Slice(ctx context.Context, start, end int64) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(s.Key),
		Range:  aws.String(fmt.Sprintf(rangeHeader, start, end-1)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch object byte range")
	}
	defer func() { _ = out.Body.Close() }()

	buf := make([]byte, end-start)
	if _, err := io.ReadFull(out.Body, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read object range body")
	}

	return buf, nil
}

func (s *Source) Size(context.Context) (int64, error) {
	return s.size, nil
}
