package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/dberrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/helpers"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "name", "email", "enrollment_no", "roll_no", "mobile", "batch_id",
	"profile_image", "certificates", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db  *db.PostgresDB
	sb  squirrel.StatementBuilderType
	now clock
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{db: database, sb: psql, now: utcNow}
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.EnrollmentNo, &s.RollNo, &s.Mobile, &s.BatchID,
		&s.ProfileImage, &s.Certificates, &s.CreatedAt, &s.UpdatedAt,
	)
	if s.Certificates == nil {
		s.Certificates = []models.FileRef{}
	}
	return s, err
}

func collectStudents(rows pgx.Rows) ([]*models.Student, error) {
	defer rows.Close()
	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// Enroll appends the student to its batch and inserts it in one transaction.
// The batch row is updated first so concurrent enrollments serialise on its lock.
func (r *StudentRepository) Enroll(ctx context.Context, s *models.Student) error {
	s.ID = uuid.New().String()
	s.Touch(r.now())
	if s.Certificates == nil {
		s.Certificates = []models.FileRef{}
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		appendSQL, appendArgs, err := r.sb.Update("batches").
			Set("student_ids", squirrel.Expr("array_append(student_ids, ?)", s.ID)).
			Set("updated_at", s.UpdatedAt).
			Where(squirrel.Eq{"id": s.BatchID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build batch append query: %w", err)
		}
		cmdTag, err := tx.Exec(ctx, appendSQL, appendArgs...)
		if err != nil {
			logger.Error().Err(err).Str("batchID", s.BatchID).Msg("Error appending student to batch")
			return fmt.Errorf("error appending student to batch: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrBatchNotFound
		}

		insertSQL, insertArgs, err := r.sb.Insert("students").
			Columns(studentColumns...).
			Values(s.ID, s.Name, s.Email, s.EnrollmentNo, s.RollNo, s.Mobile, s.BatchID,
				s.ProfileImage, s.Certificates, s.CreatedAt, s.UpdatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert student query: %w", err)
		}
		if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "students_roll_no_key") {
				return apperrors.ErrRollNoExists
			}
			logger.Error().Err(err).Str("rollNo", s.RollNo).Msg("Error inserting student")
			return fmt.Errorf("error inserting student: %w", err)
		}
		return nil
	})
}

// Unenroll deletes the student and pulls it from its batch in one transaction
func (r *StudentRepository) Unenroll(ctx context.Context, id string) (*models.Student, error) {
	var removed *models.Student
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		deleteSQL, deleteArgs, err := r.sb.Delete("students").
			Where(squirrel.Eq{"id": id}).
			Suffix("RETURNING " + joinColumns(studentColumns)).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete student query: %w", err)
		}
		s, err := scanStudent(tx.QueryRow(ctx, deleteSQL, deleteArgs...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			logger.Error().Err(err).Str("studentID", id).Msg("Error deleting student")
			return fmt.Errorf("error deleting student: %w", err)
		}

		pullSQL, pullArgs, err := r.sb.Update("batches").
			Set("student_ids", squirrel.Expr("array_remove(student_ids, ?)", id)).
			Set("updated_at", r.now()).
			Where(squirrel.Eq{"id": s.BatchID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build batch pull query: %w", err)
		}
		if _, err := tx.Exec(ctx, pullSQL, pullArgs...); err != nil {
			logger.Error().Err(err).Str("studentID", id).Str("batchID", s.BatchID).Msg("Error pulling student from batch")
			return fmt.Errorf("error pulling student from batch: %w", err)
		}
		removed = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return s, nil
}

// ListByIDs retrieves students in the order of ids
func (r *StudentRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	students, err := collectStudents(rows)
	if err != nil {
		return nil, err
	}
	return repositories.OrderByIDs(ids, students, func(s *models.Student) string { return s.ID }), nil
}

// Search pages through students whose name contains filter.Search, ignoring case.
func (r *StudentRepository) Search(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error) {
	where := squirrel.And{}
	if filter.Search != "" {
		where = append(where, squirrel.ILike{"name": helpers.ContainsPattern(filter.Search)})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("students").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}
	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("search", filter.Search).Msg("Error counting students")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}
	if total == 0 || filter.Offset >= total {
		return []*models.Student{}, total, nil
	}

	query := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		OrderBy("seq ASC").
		Offset(uint64(filter.Offset))
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search students query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("search", filter.Search).Msg("Error executing search students query")
		return nil, 0, fmt.Errorf("error searching students: %w", err)
	}
	students, err := collectStudents(rows)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}
