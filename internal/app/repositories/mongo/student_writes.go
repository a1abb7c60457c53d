package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/dberrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// studentWrites are the single-document writes that enrollment is composed of.
type studentWrites interface {
	batchExists(ctx context.Context, batchID primitive.ObjectID) (bool, error)
	insert(ctx context.Context, doc *studentDoc) error
	find(ctx context.Context, id primitive.ObjectID) (*studentDoc, error)
	// delete reports whether a document was removed.
	delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	findAndDelete(ctx context.Context, id primitive.ObjectID) (*studentDoc, error)
	// push returns ErrBatchNotFound when no batch matched.
	push(ctx context.Context, batchID, studentID primitive.ObjectID, at time.Time) error
	pull(ctx context.Context, batchID, studentID primitive.ObjectID, at time.Time) error
}

type collectionWrites struct {
	students *mongo.Collection
	batches  *mongo.Collection
}

func (w *collectionWrites) batchExists(ctx context.Context, batchID primitive.ObjectID) (bool, error) {
	n, err := w.batches.CountDocuments(ctx, bson.M{"_id": batchID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking batch: %w", err)
	}
	return n > 0, nil
}

func (w *collectionWrites) insert(ctx context.Context, doc *studentDoc) error {
	if _, err := w.students.InsertOne(ctx, doc); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrRollNoExists
		}
		logger.Error().Err(err).Str("rollNo", doc.RollNo).Msg("Error inserting student")
		return fmt.Errorf("error inserting student: %w", err)
	}
	return nil
}

func (w *collectionWrites) find(ctx context.Context, id primitive.ObjectID) (*studentDoc, error) {
	var doc studentDoc
	if err := w.students.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id.Hex()).Msg("Error finding student")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return &doc, nil
}

func (w *collectionWrites) delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := w.students.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Error().Err(err).Str("studentID", id.Hex()).Msg("Error deleting student")
		return false, fmt.Errorf("error deleting student: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (w *collectionWrites) findAndDelete(ctx context.Context, id primitive.ObjectID) (*studentDoc, error) {
	var doc studentDoc
	if err := w.students.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id.Hex()).Msg("Error deleting student")
		return nil, fmt.Errorf("error deleting student: %w", err)
	}
	return &doc, nil
}

func (w *collectionWrites) push(ctx context.Context, batchID, studentID primitive.ObjectID, at time.Time) error {
	res, err := w.batches.UpdateOne(ctx,
		bson.M{"_id": batchID},
		bson.M{
			"$push": bson.M{"students": studentID},
			"$set":  bson.M{"updatedAt": at},
		})
	if err != nil {
		logger.Error().Err(err).Str("batchID", batchID.Hex()).Msg("Error pushing student to batch")
		return fmt.Errorf("error appending student to batch: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

func (w *collectionWrites) pull(ctx context.Context, batchID, studentID primitive.ObjectID, at time.Time) error {
	_, err := w.batches.UpdateOne(ctx,
		bson.M{"_id": batchID},
		bson.M{
			"$pull": bson.M{"students": studentID},
			"$set":  bson.M{"updatedAt": at},
		})
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID.Hex()).Str("batchID", batchID.Hex()).Msg("Error pulling student from batch")
		return fmt.Errorf("error pulling student from batch: %w", err)
	}
	return nil
}
