package service

import (
	"Go_Scan/internal/logging"
	"Go_Scan/internal/storage"
	"Go_Scan/model"
	"Go_Scan/utils"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/textract"
)

// ErrInvalidUpload covers request payloads that cannot be turned into an object.
var ErrInvalidUpload = errors.New("invalid upload")

// TextDetector runs OCR against an object already in the bucket.
type TextDetector interface {
	Detect(ctx context.Context, bucket, key string) (*textract.GetDocumentTextDetectionOutput, error)
}

type DocumentService struct {
	store    storage.Store
	detector TextDetector
	bucket   string
	maxBytes int64
	logger   logging.Logger
}

func NewDocumentService(store storage.Store, detector TextDetector, bucket string, maxBytes int64, logger logging.Logger) *DocumentService {
	return &DocumentService{
		store:    store,
		detector: detector,
		bucket:   bucket,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Process uploads the base64 encoded document and blocks until text
// detection on it finishes.
func (s *DocumentService) Process(ctx context.Context, p *model.Principal, fileContent, fileName string) (*textract.GetDocumentTextDetectionOutput, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("%w: fileName is required", ErrInvalidUpload)
	}
	data, err := decodeFileContent(fileContent)
	if err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, s.maxBytes)
	}

	key, changed := utils.UploadKey(fileName)
	log := s.logger.With("user_id", p.UserID, "key", key)
	if changed {
		log.Warn(ctx, "upload filename sanitized", "original", fileName)
	}

	if err := s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), storage.PutOptions{
		ContentType: storage.ContentTypeFor(fileName),
	}); err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}
	log.Info(ctx, "file uploaded", "bucket", s.bucket, "size", len(data))

	out, err := s.detector.Detect(ctx, s.bucket, key)
	if err != nil {
		log.Error(ctx, "text detection failed", "error", err)
		return nil, err
	}
	return out, nil
}

// decodeFileContent accepts raw standard base64 or a data URL.
func decodeFileContent(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "data:") {
		i := strings.Index(content, ";base64,")
		if i < 0 {
			return nil, fmt.Errorf("%w: data URL is not base64", ErrInvalidUpload)
		}
		content = content[i+len(";base64,"):]
	}
	if content == "" {
		return nil, fmt.Errorf("%w: fileContent is required", ErrInvalidUpload)
	}
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: fileContent is not valid base64", ErrInvalidUpload)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: fileContent is empty", ErrInvalidUpload)
	}
	return data, nil
}
