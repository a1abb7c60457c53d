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
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/helpers"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// StudentRepository handles student documents and the batch back-references
type StudentRepository struct {
	db       *db.MongoDB
	students *mongo.Collection
	writes   studentWrites
	now      clock
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(m *db.MongoDB) *StudentRepository {
	students := m.Database.Collection(StudentsCollection)
	return &StudentRepository{
		db:       m,
		students: students,
		writes: &collectionWrites{
			students: students,
			batches:  m.Database.Collection(BatchesCollection),
		},
		now: utcNow,
	}
}

// NewID returns a fresh identifier in this backend's format.
func (r *StudentRepository) NewID() string {
	return primitive.NewObjectID().Hex()
}

// Enroll inserts the student and pushes it onto its batch. On deployments with
// transactions both writes commit together; otherwise a failed push is undone
// by deleting the inserted student.
func (r *StudentRepository) Enroll(ctx context.Context, s *models.Student) error {
	batchID, ok := objectID(s.BatchID)
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	s.Touch(r.now())
	doc := newStudentDoc(s, batchID)
	doc.ID = primitive.NewObjectID()

	var err error
	if r.db.Transactions {
		err = r.db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
			if err := r.writes.push(sc, batchID, doc.ID, r.now()); err != nil {
				return err
			}
			return r.writes.insert(sc, doc)
		})
	} else {
		err = r.enrollWithCompensation(ctx, batchID, doc)
	}
	if err != nil {
		return err
	}

	s.ID = doc.ID.Hex()
	s.Certificates = doc.Certificates
	return nil
}

func (r *StudentRepository) enrollWithCompensation(ctx context.Context, batchID primitive.ObjectID, doc *studentDoc) error {
	exists, err := r.writes.batchExists(ctx, batchID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrBatchNotFound
	}

	if err := r.writes.insert(ctx, doc); err != nil {
		return err
	}
	pushErr := r.writes.push(ctx, batchID, doc.ID, r.now())
	if pushErr == nil {
		return nil
	}

	// The batch vanished or the push failed: take the student back out.
	if _, delErr := r.writes.delete(context.WithoutCancel(ctx), doc.ID); delErr != nil {
		logger.Error().Err(delErr).
			Str("studentID", doc.ID.Hex()).
			Str("batchID", batchID.Hex()).
			AnErr("pushErr", pushErr).
			Msg("Failed to roll back student after batch append failure")
		return fmt.Errorf("%w: %v", apperrors.ErrPartialEnrollment, pushErr)
	}
	return pushErr
}

// Unenroll deletes the student and pulls it from its batch. Without
// transactions the pull goes first, so a failure never leaves the batch
// pointing at a deleted student; a failed delete pushes the id back.
func (r *StudentRepository) Unenroll(ctx context.Context, id string) (*models.Student, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}

	if !r.db.Transactions {
		return r.unenrollWithCompensation(ctx, oid)
	}

	var removed *models.Student
	err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		doc, err := r.writes.findAndDelete(sc, oid)
		if err != nil {
			return err
		}
		if err := r.writes.pull(sc, doc.Batch, oid, r.now()); err != nil {
			return err
		}
		removed = doc.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *StudentRepository) unenrollWithCompensation(ctx context.Context, oid primitive.ObjectID) (*models.Student, error) {
	doc, err := r.writes.find(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := r.writes.pull(ctx, doc.Batch, oid, r.now()); err != nil {
		return nil, err
	}

	deleted, delErr := r.writes.delete(ctx, oid)
	if delErr == nil {
		if !deleted {
			// Removed concurrently; the pull still stands.
			return nil, apperrors.ErrStudentNotFound
		}
		return doc.toModel(), nil
	}

	pushErr := r.writes.push(context.WithoutCancel(ctx), doc.Batch, oid, r.now())
	if pushErr != nil && !errors.Is(pushErr, apperrors.ErrBatchNotFound) {
		logger.Error().Err(pushErr).
			Str("studentID", oid.Hex()).
			Str("batchID", doc.Batch.Hex()).
			AnErr("deleteErr", delErr).
			Msg("Failed to restore batch reference after student delete failure")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPartialUnenrollment, delErr)
	}
	return nil, delErr
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	var doc studentDoc
	if err := r.students.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id).Msg("Error finding student")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return doc.toModel(), nil
}

// ListByIDs retrieves students in the order of ids
func (r *StudentRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*models.Student{}, nil
	}

	students, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
	if err != nil {
		return nil, err
	}
	return repositories.OrderByIDs(ids, students, func(s *models.Student) string { return s.ID }), nil
}

// Search pages through students whose name contains filter.Search, ignoring case
func (r *StudentRepository) Search(ctx context.Context, filter models.StudentFilter) ([]*models.Student, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": helpers.QuoteRegex(filter.Search), "$options": "i"}
	}

	total, err := r.students.CountDocuments(ctx, query)
	if err != nil {
		logger.Error().Err(err).Str("search", filter.Search).Msg("Error counting students")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}
	if total == 0 || filter.Offset >= total {
		return []*models.Student{}, total, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(filter.Offset)
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	students, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *StudentRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*models.Student, error) {
	cursor, err := r.students.Find(ctx, query, opts)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	var docs []studentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding students: %w", err)
	}
	students := make([]*models.Student, 0, len(docs))
	for i := range docs {
		students = append(students, docs[i].toModel())
	}
	return students, nil
}
