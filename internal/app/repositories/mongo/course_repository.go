package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/dberrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// CourseRepository handles course documents
type CourseRepository struct {
	courses *mongo.Collection
	batches *mongo.Collection
	now     clock
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(m *db.MongoDB) *CourseRepository {
	return &CourseRepository{
		courses: m.Database.Collection(CoursesCollection),
		batches: m.Database.Collection(BatchesCollection),
		now:     utcNow,
	}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	c.Touch(r.now())
	doc := courseDoc{
		ID:          primitive.NewObjectID(),
		Name:        c.Name,
		Duration:    c.Duration,
		Fees:        c.Fees,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if _, err := r.courses.InsertOne(ctx, doc); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrCourseNameExists
		}
		logger.Error().Err(err).Str("name", c.Name).Msg("Error inserting course")
		return fmt.Errorf("error creating course: %w", err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	var doc courseDoc
	if err := r.courses.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error finding course")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return doc.toModel(), nil
}

// List retrieves all courses in creation order
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	cursor, err := r.courses.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	var docs []courseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding courses: %w", err)
	}
	courses := make([]*models.Course, 0, len(docs))
	for i := range docs {
		courses = append(courses, docs[i].toModel())
	}
	return courses, nil
}

// Delete removes a course unless a batch still names it
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n, err := r.batches.CountDocuments(ctx, bson.M{"courses": c.Name}, options.Count().SetLimit(1))
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error checking course usage")
		return fmt.Errorf("error checking course usage: %w", err)
	}
	if n > 0 {
		return apperrors.ErrCourseInUse
	}

	oid, _ := objectID(id)
	res, err := r.courses.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error deleting course")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Count returns the number of stored courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.courses.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return n, nil
}
