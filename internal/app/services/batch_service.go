package services

import (
	"context"
	"strings"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/helpers"
)

// BatchService defines the interface for batch operations
type BatchService interface {
	CreateBatch(ctx context.Context, req dto.BatchRequest) (*models.Batch, error)
	GetAllBatches(ctx context.Context) ([]*models.Batch, error)
	GetBatch(ctx context.Context, id string) (*models.Batch, error)
	UpdateBatch(ctx context.Context, id string, req dto.BatchRequest) (*models.Batch, error)
	DeleteBatch(ctx context.Context, id string) error
	// GetStudentsInBatch returns the batch's students in enrollment order.
	GetStudentsInBatch(ctx context.Context, batchID string) ([]*models.Student, error)
}

type batchServiceImpl struct {
	batchRepo   repositories.BatchRepository
	studentRepo repositories.StudentRepository
}

// NewBatchService creates a new batch service instance
func NewBatchService(batchRepo repositories.BatchRepository, studentRepo repositories.StudentRepository) BatchService {
	return &batchServiceImpl{
		batchRepo:   batchRepo,
		studentRepo: studentRepo,
	}
}

// batchFromRequest parses dates and enforces startDate <= endDate.
func batchFromRequest(req dto.BatchRequest) (*models.Batch, error) {
	start, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("startDate", "startDate must be a date (YYYY-MM-DD)")
	}
	end, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("endDate", "endDate must be a date (YYYY-MM-DD)")
	}
	if end.Before(start) {
		return nil, apperrors.ErrInvalidDateRange
	}

	courses := trimAll(req.Courses)
	if len(courses) == 0 {
		return nil, apperrors.NewValidationError("courses", "courses must contain at least 1 item(s)")
	}

	return &models.Batch{
		BatchName:  strings.TrimSpace(req.BatchName),
		Courses:    courses,
		StartDate:  start,
		EndDate:    end,
		Instructor: strings.TrimSpace(req.Instructor),
	}, nil
}

func (s *batchServiceImpl) CreateBatch(ctx context.Context, req dto.BatchRequest) (*models.Batch, error) {
	batch, err := batchFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *batchServiceImpl) GetAllBatches(ctx context.Context) ([]*models.Batch, error) {
	return s.batchRepo.List(ctx)
}

func (s *batchServiceImpl) GetBatch(ctx context.Context, id string) (*models.Batch, error) {
	id, err := requireID("id", id)
	if err != nil {
		return nil, err
	}
	return s.batchRepo.GetByID(ctx, id)
}

func (s *batchServiceImpl) UpdateBatch(ctx context.Context, id string, req dto.BatchRequest) (*models.Batch, error) {
	id, err := requireID("id", id)
	if err != nil {
		return nil, err
	}
	batch, err := batchFromRequest(req)
	if err != nil {
		return nil, err
	}
	batch.ID = id
	if err := s.batchRepo.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *batchServiceImpl) DeleteBatch(ctx context.Context, id string) error {
	id, err := requireID("id", id)
	if err != nil {
		return err
	}
	return s.batchRepo.Delete(ctx, id)
}

func (s *batchServiceImpl) GetStudentsInBatch(ctx context.Context, batchID string) ([]*models.Student, error) {
	batchID, err := requireID("batchId", batchID)
	if err != nil {
		return nil, err
	}
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.ListByIDs(ctx, batch.Students)
}
