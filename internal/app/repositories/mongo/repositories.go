package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// NewRepositories initializes all repositories
func NewRepositories(m *db.MongoDB) *repositories.Repositories {
	return &repositories.Repositories{
		Courses:  NewCourseRepository(m),
		Batches:  NewBatchRepository(m),
		Students: NewStudentRepository(m),
	}
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CoursesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("courses_name_key")},
		},
		BatchesCollection: {
			{Keys: bson.D{{Key: "courses", Value: 1}}, Options: options.Index().SetName("batches_courses_idx")},
		},
		StudentsCollection: {
			{Keys: bson.D{{Key: "rollNo", Value: 1}}, Options: options.Index().SetUnique(true).SetName("students_roll_no_key")},
			{Keys: bson.D{{Key: "batch", Value: 1}}, Options: options.Index().SetName("students_batch_idx")},
		},
	}
	for coll, models := range indexes {
		if _, err := database.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}
	logger.Info().Msg("MongoDB indexes ensured")
	return nil
}

type clock func() time.Time

func utcNow() time.Time {
	// BSON dates carry millisecond precision.
	return time.Now().UTC().Truncate(time.Millisecond)
}
