package config

import (
	"fmt"
	"os"
	"strings"
)

// StorageConfig holds object storage and OCR provider settings.
// The same AWS credentials serve S3 and Textract.
type StorageConfig struct {
	Driver          string `json:"driver"`   // s3, minio
	Endpoint        string `json:"endpoint"` // empty means the AWS default for the region
	UseSSL          bool   `json:"use_ssl"`
	Region          string `json:"region"`
	AccessKeyID     string `json:"-"`
	SecretAccessKey string `json:"-"`
	Bucket          string `json:"bucket"`
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Driver:          strings.ToLower(getEnv("STORAGE_DRIVER", "s3")),
		Endpoint:        strings.TrimSpace(os.Getenv("STORAGE_ENDPOINT")),
		UseSSL:          getEnvBool("STORAGE_USE_SSL", true),
		Region:          getEnv("AWS_REGION", "us-east-1"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Bucket:          getEnv("BUCKET_NAME", "my-textaract-bucket-2"),
	}
}

// HasStaticCredentials reports whether both halves of the key pair are set.
func (s StorageConfig) HasStaticCredentials() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// MinioEndpoint returns host[:port] for the minio driver.
func (s StorageConfig) MinioEndpoint() string {
	if s.Endpoint == "" {
		return "s3.amazonaws.com"
	}
	endpoint := strings.TrimPrefix(s.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimRight(endpoint, "/")
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case "s3", "minio":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", s.Driver)
	}
	if strings.TrimSpace(s.Bucket) == "" {
		return fmt.Errorf("BUCKET_NAME is empty")
	}
	return nil
}
