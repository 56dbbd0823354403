package storage

import (
	"Go_Scan/config"
	"Go_Scan/internal/awsx"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements Store with a MinIO client. It talks to any
// S3-compatible endpoint, AWS included.
type MinioStore struct {
	client *minio.Client
	creds  *credentials.Credentials
}

// NewMinioStore builds the client without touching the network.
func NewMinioStore(sc config.StorageConfig) (*MinioStore, error) {
	var creds *credentials.Credentials
	if sc.HasStaticCredentials() {
		creds = credentials.NewStaticV4(sc.AccessKeyID, sc.SecretAccessKey, "")
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
		})
	}
	client, err := minio.New(sc.MinioEndpoint(), &minio.Options{
		Creds:  creds,
		Secure: sc.UseSSL,
		Region: sc.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinioStore{client: client, creds: creds}, nil
}

// PutObject uploads an object to MinIO.
func (s *MinioStore) PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts PutOptions) error {
	value, err := s.creds.Get()
	if err != nil || value.AccessKeyID == "" || value.SecretAccessKey == "" {
		return awsx.ErrCredentials
	}
	_, err = s.client.PutObject(ctx, bucket, object, reader, size, minio.PutObjectOptions{
		ContentType: opts.ContentType,
	})
	if err != nil {
		if isMinioCredentialError(err) {
			return fmt.Errorf("%w: %v", awsx.ErrCredentials, err)
		}
		return err
	}
	return nil
}

func isMinioCredentialError(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "InvalidToken", "ExpiredToken":
		return true
	default:
		return false
	}
}
