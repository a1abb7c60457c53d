package filestorage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// OSSConfig configures the Aliyun OSS backend.
type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	// PublicBaseURL overrides the default https://<bucket>.<endpoint> URL prefix.
	PublicBaseURL string
	// Prefix is prepended to every object key.
	Prefix string
}

// OSSStorage keeps files in an Aliyun OSS bucket. Object keys are the delete tokens.
type OSSStorage struct {
	bucket  *oss.Bucket
	baseURL string
	prefix  string
}

// NewOSSStorage connects to the configured bucket.
func NewOSSStorage(cfg OSSConfig) (*OSSStorage, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
		baseURL = fmt.Sprintf("https://%s.%s", cfg.Bucket, strings.TrimRight(host, "/"))
	}

	logger.Info().Str("bucket", cfg.Bucket).Str("endpoint", cfg.Endpoint).Msg("OSS storage configured")
	return &OSSStorage{
		bucket:  bucket,
		baseURL: baseURL,
		prefix:  strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (s *OSSStorage) key(folder, name string) string {
	key := objectKey(folder, name)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key
}

// Upload implements Storage
func (s *OSSStorage) Upload(ctx context.Context, name, contentType string, r io.Reader, folder string) (models.FileRef, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := s.key(folder, name)
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to upload object")
		return models.FileRef{}, fmt.Errorf("failed to upload object: %w", err)
	}
	return models.FileRef{
		FileName:    name,
		FileURL:     s.baseURL + "/" + key,
		DeleteToken: key,
	}, nil
}

// Delete implements Storage. OSS deletes are idempotent, so existence is checked first.
func (s *OSSStorage) Delete(ctx context.Context, token string) error {
	key, err := cleanToken(token)
	if err != nil {
		return err
	}
	exists, err := s.bucket.IsObjectExist(key, oss.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to stat object: %w", err)
	}
	if !exists {
		return wrapNotFound(token)
	}
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
