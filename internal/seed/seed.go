package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"
	appRepos "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
)

// DefaultCourses is the catalogue created on an empty store.
var DefaultCourses = []appModels.Course{
	{Name: "Web Development", Duration: "6 months", Fees: 25000, Description: "HTML, CSS, JavaScript, React and a backend language"},
	{Name: "Python Programming", Duration: "3 months", Fees: 12000, Description: "Python fundamentals, scripting and data handling"},
	{Name: "Data Science", Duration: "6 months", Fees: 30000, Description: "Statistics, pandas, visualisation and machine learning basics"},
	{Name: "Digital Marketing", Duration: "2 months", Fees: 8000, Description: "SEO, social media and campaign analytics"},
}

// CreateDefaultData creates the default courses when no course exists yet.
// Existing catalogues are never touched.
func CreateDefaultData(ctx context.Context, courseRepo appRepos.CourseRepository, lgr zerolog.Logger) error {
	count, err := courseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Info().Int64("courses", count).Msg("Courses already present, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating default courses...")
	var finalErr error // collect errors without stopping the process
	created := 0
	for _, c := range DefaultCourses {
		course := c
		err := courseRepo.Create(ctx, &course)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrResourceAlreadyExists):
			// another instance seeded concurrently
		default:
			lgr.Error().Err(err).Str("course", c.Name).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}
	lgr.Info().Int("created", created).Msg("Default courses created")
	return finalErr
}
