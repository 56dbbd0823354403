package storage

import (
	"Go_Scan/internal/awsx"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3PutAPI is the part of the S3 client the store uses.
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store implements Store with the AWS SDK.
type S3Store struct {
	api         S3PutAPI
	credentials aws.CredentialsProvider
}

// NewS3Store builds an S3 client from the shared AWS config. A non-empty
// endpoint switches to path-style addressing for S3-compatible servers.
func NewS3Store(cfg aws.Config, endpoint string) *S3Store {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{api: client, credentials: cfg.Credentials}
}

// PutObject uploads an object to S3.
func (s *S3Store) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts PutOptions) error {
	if err := awsx.RequireCredentials(ctx, s.credentials); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(object),
		Body:          reader,
		ContentLength: aws.Int64(size),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if _, err := s.api.PutObject(ctx, input); err != nil {
		if awsx.IsCredentialError(err) {
			return fmt.Errorf("%w: %v", awsx.ErrCredentials, err)
		}
		return fmt.Errorf("put object %s: %w", object, err)
	}
	return nil
}
