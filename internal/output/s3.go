// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const (
	s3Scheme      = "s3://"
	defaultRegion = "us-east-1"
)

// S3Sink uploads the batch as a single object.
type S3Sink struct {
	client      s3iface.S3API
	bucket      string
	key         string
	contentType string

	// Metadata is attached to the uploaded object (e.g. run id, record count).
	Metadata map[string]string
}

// NewS3Sink creates an uploader for s3://bucket/key using the default AWS
// credential chain. An empty region selects us-east-1.
func NewS3Sink(bucket, key, region, contentType string) (*S3Sink, error) {
	if region == "" {
		region = defaultRegion
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return newS3Sink(s3.New(sess), bucket, key, contentType), nil
}

func newS3Sink(client s3iface.S3API, bucket, key, contentType string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, key: key, contentType: contentType}
}

func (s *S3Sink) Write(ctx context.Context, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(s.contentType),
	}
	if len(s.Metadata) > 0 {
		input.Metadata = aws.StringMap(s.Metadata)
	}
	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (s *S3Sink) String() string { return s3Scheme + s.bucket + "/" + s.key }

// ParseS3URI splits s3://bucket/key into its parts. Both must be non-empty.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an S3 URI: %q", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("S3 URI %q needs both bucket and key", uri)
	}
	return bucket, key, nil
}
