package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/migrations"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories/repotest"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
)

func TestPostgresRepositories(t *testing.T) {
	url := os.Getenv("REGISTRAR_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("REGISTRAR_TEST_POSTGRES_URL not set")
	}

	database, err := db.Connect(url, 10, 0, "")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(database.Close)

	if err := migrations.NewMigrator(database.Pool).Migrate(context.Background(), migrations.Embedded()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repotest.Run(t, func(t *testing.T) *repositories.Repositories {
		return NewRepositories(database)
	})
}
