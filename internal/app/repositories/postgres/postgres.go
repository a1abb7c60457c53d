// Package postgres implements the repository contracts on PostgreSQL with pgx and squirrel.
package postgres

import (
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
)

// psql builds statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *repositories.Repositories {
	return &repositories.Repositories{
		Courses:  NewCourseRepository(database),
		Batches:  NewBatchRepository(database),
		Students: NewStudentRepository(database),
	}
}

type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
