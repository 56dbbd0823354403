// Package awsx builds the AWS configuration shared by the S3 store and the
// Textract client, and classifies credential problems.
package awsx

import (
	"Go_Scan/config"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go"
)

// ErrCredentials means the storage/OCR provider credentials are missing or rejected.
var ErrCredentials = errors.New("AWS credentials not found or incomplete")

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// LoadConfig resolves region and credentials. Static keys from the
// configuration win; otherwise the default provider chain applies.
func LoadConfig(ctx context.Context, sc config.StorageConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(sc.Region),
	}
	if sc.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(sc.AccessKeyID, sc.SecretAccessKey, ""),
		))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// RequireCredentials fails with ErrCredentials unless a usable key pair resolves.
func RequireCredentials(ctx context.Context, provider aws.CredentialsProvider) error {
	if provider == nil {
		return ErrCredentials
	}
	creds, err := provider.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCredentials, err)
	}
	if !creds.HasKeys() {
		return ErrCredentials
	}
	return nil
}

// IsCredentialError reports whether an AWS API error means the request was
// signed with keys the service does not accept.
func IsCredentialError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "InvalidToken", "ExpiredToken",
		"UnrecognizedClientException", "InvalidSignatureException", "ExpiredTokenException",
		"InvalidClientTokenId", "MissingAuthenticationToken":
		return true
	default:
		return false
	}
}

// ClassifyCredentialError wraps err with ErrCredentials when it is one.
func ClassifyCredentialError(err error) error {
	if err != nil && IsCredentialError(err) {
		return fmt.Errorf("%w: %v", ErrCredentials, err)
	}
	return err
}
