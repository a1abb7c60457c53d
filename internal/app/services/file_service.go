package services

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/filestorage"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/metrics"
)

// DefaultDeleteConcurrency bounds parallel storage deletes.
const DefaultDeleteConcurrency = 4

// FileService defines the interface for attachment operations
type FileService interface {
	UploadFile(ctx context.Context, name, contentType string, size int64, r io.Reader, folder string) (models.FileRef, error)
	// DeleteFiles deletes every token independently. Results follow the order of tokens.
	DeleteFiles(ctx context.Context, tokens []string) []dto.DeleteFileResult
}

type fileServiceImpl struct {
	storage     filestorage.Storage
	maxBytes    int64
	concurrency int
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewFileService creates a new file service. maxBytes <= 0 disables the size check.
func NewFileService(storage filestorage.Storage, maxBytes int64, m *metrics.Metrics, logger zerolog.Logger) FileService {
	return &fileServiceImpl{
		storage:     storage,
		maxBytes:    maxBytes,
		concurrency: DefaultDeleteConcurrency,
		metrics:     m,
		logger:      logger,
	}
}

func (s *fileServiceImpl) UploadFile(ctx context.Context, name, contentType string, size int64, r io.Reader, folder string) (models.FileRef, error) {
	if !filestorage.ValidFolder(folder) {
		return models.FileRef{}, apperrors.NewValidationError("folder", "folder must be one of: photos certificates")
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return models.FileRef{}, apperrors.ErrFileTooLarge
	}

	ref, err := s.storage.Upload(ctx, name, contentType, r, folder)
	s.metrics.ObserveFileOp("upload", err)
	if err != nil {
		s.logger.Error().Err(err).Str("fileName", name).Str("folder", folder).Msg("File upload failed")
		return models.FileRef{}, err
	}
	return ref, nil
}

func (s *fileServiceImpl) DeleteFiles(ctx context.Context, tokens []string) []dto.DeleteFileResult {
	results := make([]dto.DeleteFileResult, len(tokens))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, token := range tokens {
		i, token := i, token
		g.Go(func() error {
			err := s.storage.Delete(ctx, token)
			s.metrics.ObserveFileOp("delete", err)
			results[i] = dto.DeleteFileResult{Token: token, Deleted: err == nil}
			if err != nil {
				results[i].Message = deleteFailureMessage(err)
				s.logger.Warn().Err(err).Str("token", token).Msg("File delete failed")
			}
			// Failures are reported per item and never cancel the siblings.
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func deleteFailureMessage(err error) string {
	if ce, ok := apperrors.AsCustom(err); ok {
		return ce.Message
	}
	return "Failed to delete file"
}
