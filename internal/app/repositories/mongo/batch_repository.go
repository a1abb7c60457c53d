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
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// BatchRepository handles batch documents
type BatchRepository struct {
	batches *mongo.Collection
	now     clock
}

// NewBatchRepository creates a new BatchRepository
func NewBatchRepository(m *db.MongoDB) *BatchRepository {
	return &BatchRepository{
		batches: m.Database.Collection(BatchesCollection),
		now:     utcNow,
	}
}

// Create inserts a new batch with no students
func (r *BatchRepository) Create(ctx context.Context, b *models.Batch) error {
	b.Touch(r.now())
	doc := batchDoc{
		ID:         primitive.NewObjectID(),
		BatchName:  b.BatchName,
		Courses:    b.Courses,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		Instructor: b.Instructor,
		Students:   []primitive.ObjectID{},
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if _, err := r.batches.InsertOne(ctx, doc); err != nil {
		logger.Error().Err(err).Str("batchName", b.BatchName).Msg("Error inserting batch")
		return fmt.Errorf("error creating batch: %w", err)
	}
	b.ID = doc.ID.Hex()
	b.Students = []string{}
	return nil
}

// GetByID retrieves a batch by ID
func (r *BatchRepository) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, apperrors.ErrBatchNotFound
	}
	var doc batchDoc
	if err := r.batches.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Str("batchID", id).Msg("Error finding batch")
		return nil, fmt.Errorf("error getting batch by ID: %w", err)
	}
	return doc.toModel(), nil
}

// List retrieves all batches in creation order
func (r *BatchRepository) List(ctx context.Context) ([]*models.Batch, error) {
	cursor, err := r.batches.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		logger.Error().Err(err).Msg("Error querying batches")
		return nil, fmt.Errorf("error querying batches: %w", err)
	}
	var docs []batchDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding batches: %w", err)
	}
	batches := make([]*models.Batch, 0, len(docs))
	for i := range docs {
		batches = append(batches, docs[i].toModel())
	}
	return batches, nil
}

// Update overwrites the editable fields and reloads b from the stored document
func (r *BatchRepository) Update(ctx context.Context, b *models.Batch) error {
	oid, ok := objectID(b.ID)
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	update := bson.M{"$set": bson.M{
		"batchName":  b.BatchName,
		"courses":    b.Courses,
		"startDate":  b.StartDate,
		"endDate":    b.EndDate,
		"instructor": b.Instructor,
		"updatedAt":  r.now(),
	}}
	var doc batchDoc
	err := r.batches.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.ErrBatchNotFound
		}
		logger.Error().Err(err).Str("batchID", b.ID).Msg("Error updating batch")
		return fmt.Errorf("error updating batch: %w", err)
	}
	*b = *doc.toModel()
	return nil
}

// Delete removes a batch whose students array is empty
func (r *BatchRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	res, err := r.batches.DeleteOne(ctx, bson.M{"_id": oid, "students": bson.M{"$size": 0}})
	if err != nil {
		logger.Error().Err(err).Str("batchID", id).Msg("Error deleting batch")
		return fmt.Errorf("error deleting batch: %w", err)
	}
	if res.DeletedCount > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return apperrors.ErrBatchHasStudents
}
