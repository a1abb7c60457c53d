package repositories

import (
	"context"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
)

// CourseRepository persists courses.
type CourseRepository interface {
	// Create stores c, assigning its ID. A duplicate name yields apperrors.ErrCourseNameExists.
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	// List returns every course in creation order.
	List(ctx context.Context) ([]*models.Course, error)
	// Delete removes a course. A course named by any batch yields apperrors.ErrCourseInUse.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// BatchRepository persists batches. Batch.Students is owned by StudentRepository:
// Update never changes it.
type BatchRepository interface {
	Create(ctx context.Context, b *models.Batch) error
	GetByID(ctx context.Context, id string) (*models.Batch, error)
	// List returns every batch in creation order.
	List(ctx context.Context) ([]*models.Batch, error)
	// Update overwrites name, courses, dates and instructor.
	Update(ctx context.Context, b *models.Batch) error
	// Delete removes an empty batch. A batch with students yields apperrors.ErrBatchHasStudents.
	Delete(ctx context.Context, id string) error
}

// StudentRepository persists students and keeps each batch's student list in step.
type StudentRepository interface {
	// Enroll stores s and appends its ID to the students of s.BatchID as one atomic unit.
	// A missing batch yields apperrors.ErrBatchNotFound and nothing is stored.
	Enroll(ctx context.Context, s *models.Student) error
	// Unenroll deletes the student and pulls its ID from its batch as one atomic unit.
	// It returns the deleted student.
	Unenroll(ctx context.Context, id string) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	// ListByIDs returns the students with the given IDs in the order of ids. Unknown IDs are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*models.Student, error)
	// Search returns one page of students whose name contains filter.Search, and the total match count.
	Search(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Courses  CourseRepository
	Batches  BatchRepository
	Students StudentRepository
}

// OrderByIDs arranges items to follow ids, dropping IDs with no match.
func OrderByIDs[T any](ids []string, items []T, idOf func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[idOf(it)] = it
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out
}
