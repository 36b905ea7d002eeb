package image

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/tourdesk/core/internal/config"
	"github.com/tourdesk/core/internal/pkg/apperr"
)

// uploader is the part of the S3 client the service needs; tests swap it out.
type uploader interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// UploadResult is the payload returned to the admin UI. Only the URL is ever
// persisted on catalog entities.
type UploadResult struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// Service uploads admin images to an S3-compatible bucket and hands back a
// durable public URL.
type Service struct {
	client  uploader
	storage config.StorageConfig
	upload  config.UploadConfig
}

func NewService(cfg *config.AppConfig) *Service {
	awsCfg := aws.Config{
		Region: cfg.Storage.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey, ""),
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
		o.UsePathStyle = cfg.Storage.PathStyleAccess
	})
	return &Service{client: client, storage: cfg.Storage, upload: cfg.Upload}
}

// Upload validates the file against the configured format allow-list and
// size cap, stores it under a date-partitioned random key and returns the
// public URL.
func (s *Service) Upload(ctx context.Context, filename string, size int64, body io.Reader) (*UploadResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if !s.allowedFormat(ext) {
		return nil, apperr.Validation("file", fmt.Sprintf("허용되지 않는 형식입니다 (%s)", strings.Join(s.upload.AllowedFormats, ", ")))
	}
	maxBytes := int64(s.upload.MaxSizeMB) << 20
	if size > maxBytes {
		return nil, apperr.Validation("file", fmt.Sprintf("파일은 %dMB 이하여야 합니다", s.upload.MaxSizeMB))
	}

	key := fmt.Sprintf("images/%s/%s.%s",
		time.Now().Format("2006/01"), uuid.New().String(), ext)

	contentType := mime.TypeByExtension("." + ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.storage.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload to bucket %q: %w", s.storage.Bucket, err)
	}

	return &UploadResult{URL: s.publicURL(key), Key: key, Size: size}, nil
}

func (s *Service) allowedFormat(ext string) bool {
	for _, f := range s.upload.AllowedFormats {
		if strings.EqualFold(f, ext) {
			return true
		}
	}
	return false
}

func (s *Service) publicURL(key string) string {
	if s.storage.CustomDomain != "" {
		domain := strings.TrimRight(s.storage.CustomDomain, "/")
		if !strings.Contains(domain, "://") {
			domain = "https://" + domain
		}
		return domain + "/" + key
	}
	if s.storage.Endpoint != "" {
		endpoint := strings.TrimRight(s.storage.Endpoint, "/")
		if s.storage.PathStyleAccess {
			return fmt.Sprintf("%s/%s/%s", endpoint, s.storage.Bucket, key)
		}
		if u, rest, found := strings.Cut(endpoint, "://"); found {
			return fmt.Sprintf("%s://%s.%s/%s", u, s.storage.Bucket, rest, key)
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.storage.Bucket, s.storage.Region, key)
}
