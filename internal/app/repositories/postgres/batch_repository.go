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
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

var batchColumns = []string{"id", "batch_name", "courses", "start_date", "end_date", "instructor", "student_ids", "created_at", "updated_at"}

// BatchRepository handles batch database operations
type BatchRepository struct {
	db  *db.PostgresDB
	sb  squirrel.StatementBuilderType
	now clock
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(database *db.PostgresDB) *BatchRepository {
	return &BatchRepository{db: database, sb: psql, now: utcNow}
}

func scanBatch(row pgx.Row) (*models.Batch, error) {
	b := &models.Batch{}
	err := row.Scan(&b.ID, &b.BatchName, &b.Courses, &b.StartDate, &b.EndDate, &b.Instructor, &b.Students, &b.CreatedAt, &b.UpdatedAt)
	if b.Students == nil {
		b.Students = []string{}
	}
	return b, err
}

// Create inserts a new batch with no students
func (r *BatchRepository) Create(ctx context.Context, b *models.Batch) error {
	b.ID = uuid.New().String()
	b.Students = []string{}
	b.Touch(r.now())

	sql, args, err := r.sb.Insert("batches").
		Columns(batchColumns...).
		Values(b.ID, b.BatchName, b.Courses, b.StartDate, b.EndDate, b.Instructor, b.Students, b.CreatedAt, b.UpdatedAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create batch SQL")
		return fmt.Errorf("failed to build create batch query: %w", err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("batchName", b.BatchName).Msg("Error executing create batch query")
		return fmt.Errorf("error creating batch: %w", err)
	}
	return nil
}

// GetByID retrieves a batch by ID
func (r *BatchRepository) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	sql, args, err := r.sb.Select(batchColumns...).
		From("batches").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get batch query: %w", err)
	}

	b, err := scanBatch(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Str("batchID", id).Msg("Error scanning batch row")
		return nil, fmt.Errorf("error getting batch by ID: %w", err)
	}
	return b, nil
}

// List retrieves all batches in creation order
func (r *BatchRepository) List(ctx context.Context) ([]*models.Batch, error) {
	sql, args, err := r.sb.Select(batchColumns...).
		From("batches").
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list batches query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list batches query")
		return nil, fmt.Errorf("error querying batches: %w", err)
	}
	defer rows.Close()

	batches := []*models.Batch{}
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning batch row: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating batch rows")
		return nil, fmt.Errorf("error iterating batch rows: %w", err)
	}
	return batches, nil
}

// Update overwrites the editable fields and reloads b from the stored row
func (r *BatchRepository) Update(ctx context.Context, b *models.Batch) error {
	sql, args, err := r.sb.Update("batches").
		SetMap(map[string]interface{}{
			"batch_name": b.BatchName,
			"courses":    b.Courses,
			"start_date": b.StartDate,
			"end_date":   b.EndDate,
			"instructor": b.Instructor,
			"updated_at": r.now(),
		}).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING " + joinColumns(batchColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update batch SQL")
		return fmt.Errorf("failed to build update batch query: %w", err)
	}

	updated, err := scanBatch(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Str("batchID", b.ID).Msg("Error executing update batch query")
		return fmt.Errorf("error updating batch: %w", err)
	}
	*b = *updated
	return nil
}

// Delete removes a batch that has no students
func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM batches WHERE id = $1 AND cardinality(student_ids) = 0`, id)
	if err != nil {
		logger.Error().Err(err).Str("batchID", id).Msg("Error executing delete batch query")
		return fmt.Errorf("error deleting batch: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	// Nothing deleted: either the batch is missing or it still has students.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return apperrors.ErrBatchHasStudents
}
