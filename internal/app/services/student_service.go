package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/email"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/helpers"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/metrics"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/spreadsheet"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/validation"
)

// ErrInvalidSpreadsheet is returned when an uploaded import file cannot be read.
var ErrInvalidSpreadsheet = apperrors.NewValidationError("file", "File must be a readable .xlsx workbook")

// StudentService defines the interface for student operations
type StudentService interface {
	// AddStudent enrolls a new student into req.Data.Batch.
	AddStudent(ctx context.Context, req dto.AddStudentRequest) (*models.Student, error)
	// SearchStudents returns one page of students whose name contains search.
	SearchStudents(ctx context.Context, page, limit int, search string) (*dto.StudentPageResponse, error)
	GetStudentDetails(ctx context.Context, id string) (*models.StudentDetail, error)
	// DeleteStudent unenrolls the student and then removes its stored files.
	DeleteStudent(ctx context.Context, id string) error
	ImportStudents(ctx context.Context, batchID string, r io.Reader) (*dto.ImportStudentsResponse, error)
	// ExportStudents renders the batch's students as an .xlsx workbook.
	ExportStudents(ctx context.Context, batchID string) (fileName string, data []byte, err error)
}

type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
	batchRepo   repositories.BatchRepository
	files       FileService
	mailer      email.EmailService
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewStudentService creates a new student service. A nil mailer disables enrollment notices.
func NewStudentService(
	studentRepo repositories.StudentRepository,
	batchRepo repositories.BatchRepository,
	files FileService,
	mailer email.EmailService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		batchRepo:   batchRepo,
		files:       files,
		mailer:      mailer,
		metrics:     m,
		logger:      logger,
	}
}

func studentFromRequest(req dto.AddStudentRequest) *models.Student {
	d := req.Data
	student := &models.Student{
		Name:         strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName),
		Email:        strings.TrimSpace(d.Email),
		EnrollmentNo: strings.TrimSpace(d.EnrollmentNo),
		RollNo:       strings.TrimSpace(d.RollNo),
		Mobile:       strings.TrimSpace(d.Mobile),
		BatchID:      strings.TrimSpace(d.Batch),
		Certificates: make([]models.FileRef, 0, len(req.Certificates)),
	}
	for _, c := range req.Certificates {
		student.Certificates = append(student.Certificates, c.ToModel())
	}
	if req.Photo != nil {
		photo := req.Photo.ToModel()
		student.ProfileImage = &photo
	}
	return student
}

func (s *studentServiceImpl) AddStudent(ctx context.Context, req dto.AddStudentRequest) (*models.Student, error) {
	batchID, err := requireID("batch", req.Data.Batch)
	if err != nil {
		return nil, err
	}
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	student := studentFromRequest(req)
	if err := s.studentRepo.Enroll(ctx, student); err != nil {
		return nil, err
	}
	s.metrics.ObserveEnrollment()
	s.notifyEnrollment(student, batch)
	return student, nil
}

// notifyEnrollment mails the student in the background; failures are only logged.
func (s *studentServiceImpl) notifyEnrollment(student *models.Student, batch *models.Batch) {
	if s.mailer == nil {
		return
	}
	notice := email.EnrollmentNotice{
		ToEmail:    student.Email,
		ToName:     student.Name,
		BatchName:  batch.BatchName,
		Courses:    append([]string(nil), batch.Courses...),
		StartDate:  batch.StartDate.Format("2006-01-02"),
		Instructor: batch.Instructor,
		RollNo:     student.RollNo,
	}
	go func() {
		if err := s.mailer.SendEnrollmentNotice(notice); err != nil {
			s.logger.Warn().Err(err).Str("studentID", student.ID).Msg("Failed to send enrollment notice")
		}
	}()
}

func (s *studentServiceImpl) SearchStudents(ctx context.Context, page, limit int, search string) (*dto.StudentPageResponse, error) {
	if page < 1 {
		page = helpers.DefaultPage
	}
	if limit < 1 {
		limit = helpers.DefaultPageSize
	}

	students, total, err := s.studentRepo.Search(ctx, models.StudentFilter{
		Search: strings.TrimSpace(search),
		Offset: helpers.CalculateOffset(page, limit),
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, err
	}

	return &dto.StudentPageResponse{
		Students:   students,
		Total:      total,
		TotalPages: helpers.TotalPages(total, limit),
		Page:       page,
		Limit:      limit,
	}, nil
}

func (s *studentServiceImpl) GetStudentDetails(ctx context.Context, id string) (*models.StudentDetail, error) {
	id, err := requireID("id", id)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.StudentDetail{Student: student}
	batch, err := s.batchRepo.GetByID(ctx, student.BatchID)
	switch {
	case err == nil:
		detail.Batch = batch
	case errors.Is(err, apperrors.ErrResourceNotFound):
		s.logger.Warn().Str("studentID", id).Str("batchID", student.BatchID).Msg("Student references a missing batch")
	default:
		return nil, err
	}
	return detail, nil
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	id, err := requireID("id", id)
	if err != nil {
		return err
	}
	removed, err := s.studentRepo.Unenroll(ctx, id)
	if err != nil {
		return err
	}

	tokens := removed.FileTokens()
	if len(tokens) == 0 || s.files == nil {
		return nil
	}
	// The record is already gone; leftover objects are logged, not reported.
	for _, r := range s.files.DeleteFiles(context.WithoutCancel(ctx), tokens) {
		if !r.Deleted {
			s.logger.Warn().Str("studentID", id).Str("token", r.Token).Str("reason", r.Message).Msg("Orphaned student file")
		}
	}
	return nil
}

func (s *studentServiceImpl) ImportStudents(ctx context.Context, batchID string, r io.Reader) (*dto.ImportStudentsResponse, error) {
	batchID, err := requireID("batchId", batchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.batchRepo.GetByID(ctx, batchID); err != nil {
		return nil, err
	}

	rows, err := spreadsheet.ReadStudentRows(r)
	if err != nil {
		s.logger.Warn().Err(err).Str("batchID", batchID).Msg("Unreadable import file")
		return nil, ErrInvalidSpreadsheet
	}

	resp := &dto.ImportStudentsResponse{Failed: []dto.ImportFailure{}}
	for _, row := range rows {
		req := dto.AddStudentRequest{Data: dto.StudentData{
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			Email:        row.Email,
			Mobile:       row.Mobile,
			RollNo:       row.RollNo,
			EnrollmentNo: row.EnrollmentNo,
			Batch:        batchID,
		}}
		if err := binding.Validator.ValidateStruct(&req.Data); err != nil {
			resp.Failed = append(resp.Failed, dto.ImportFailure{Row: row.Row, Message: rowValidationMessage(err)})
			continue
		}
		if _, err := s.AddStudent(ctx, req); err != nil {
			resp.Failed = append(resp.Failed, dto.ImportFailure{Row: row.Row, Message: s.rowFailureMessage(row.Row, err)})
			continue
		}
		resp.Imported++
	}

	resp.Message = fmt.Sprintf("Imported %d of %d students", resp.Imported, len(rows))
	return resp, nil
}

func rowValidationMessage(err error) string {
	if _, msg, ok := validation.FieldErrors(err); ok {
		return msg
	}
	return err.Error()
}

func (s *studentServiceImpl) rowFailureMessage(row int, err error) string {
	if ce, ok := apperrors.AsCustom(err); ok {
		return ce.Message
	}
	s.logger.Error().Err(err).Int("row", row).Msg("Failed to import student row")
	return "Internal server error"
}

func (s *studentServiceImpl) ExportStudents(ctx context.Context, batchID string) (string, []byte, error) {
	batchID, err := requireID("batchId", batchID)
	if err != nil {
		return "", nil, err
	}
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return "", nil, err
	}
	students, err := s.studentRepo.ListByIDs(ctx, batch.Students)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteStudents(&buf, students); err != nil {
		return "", nil, fmt.Errorf("failed to render students workbook: %w", err)
	}
	return exportFileName(batch.BatchName), buf.Bytes(), nil
}

func exportFileName(batchName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(batchName))
	if name == "" {
		name = "batch"
	}
	return name + "-students.xlsx"
}
