// Package s3 reads a Parquet file from an S3 object using Range GETs.
package s3

import (
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type object struct {
	client s3iface.S3API

	BucketName string
	Key        string
}
