// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

// S3Source reads the document from an S3-compatible bucket.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Source builds a client from static keys when both are given, otherwise
// from the default AWS credential chain. A custom endpoint (MinIO, R2)
// switches the client to path-style addressing.
func NewS3Source(ctx context.Context, bucket, key string, opts Options) (*S3Source, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("catalog: s3 source needs both bucket and key, got %q/%q", bucket, key)
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.S3Region)}
	if opts.S3AccessKeyID != "" && opts.S3SecretAccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.S3AccessKeyID, opts.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("catalog: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3SourceWithClient(client, bucket, key), nil
}

// NewS3SourceWithClient wraps an existing client.
func NewS3SourceWithClient(client *s3.Client, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// Name implements [Source].
func (s *S3Source) Name() string { return "s3://" + s.bucket + "/" + s.key }

// Fetch implements [Source].
func (s *S3Source) Fetch(ctx context.Context) (*Document, error) {
	object, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, apperr.FetchFailed(s.Name(), err)
	}
	defer object.Body.Close()

	return Decode(s.Name(), object.Body)
}
