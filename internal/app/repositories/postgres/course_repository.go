package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/dberrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

var courseColumns = []string{"id", "name", "duration", "fees", "description", "created_at", "updated_at"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db  *db.PostgresDB
	sb  squirrel.StatementBuilderType
	now clock
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(database *db.PostgresDB) *CourseRepository {
	return &CourseRepository{db: database, sb: psql, now: utcNow}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Name, &c.Duration, &c.Fees, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	c.ID = uuid.New().String()
	c.Touch(r.now())

	sql, args, err := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(c.ID, c.Name, c.Duration, c.Fees, c.Description, c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err = r.db.Pool.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_name_key") {
			return apperrors.ErrCourseNameExists
		}
		logger.Error().Err(err).Str("name", c.Name).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return c, nil
}

// List retrieves all courses in creation order
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// Delete removes a course unless a batch still names it. The check and the
// delete share a transaction holding a row lock on the course.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var name string
		err := tx.QueryRow(ctx, `SELECT name FROM courses WHERE id = $1 FOR UPDATE`, id).Scan(&name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("error locking course: %w", err)
		}

		checkSQL, checkArgs, err := r.sb.Select("1").
			From("batches").
			Where("? = ANY(courses)", name).
			Prefix("SELECT EXISTS (").Suffix(")").
			Limit(1).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build course usage query: %w", err)
		}
		var inUse bool
		if err := tx.QueryRow(ctx, checkSQL, checkArgs...).Scan(&inUse); err != nil {
			logger.Error().Err(err).Str("courseID", id).Msg("Error checking course usage")
			return fmt.Errorf("error checking course usage: %w", err)
		}
		if inUse {
			return apperrors.ErrCourseInUse
		}

		if _, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
			logger.Error().Err(err).Str("courseID", id).Msg("Error deleting course")
			return fmt.Errorf("error deleting course: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return n, nil
}
