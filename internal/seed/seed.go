// Package seed creates the default catalog and admin account on first start.
package seed

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/repositories"
	"github.com/dcastillo/campusenroll/internal/pkg/auth"
)

const defaultAdminEmail = "admin@campus.local"

// courseSeed pairs a course name with its credits.
type courseSeed struct {
	name    string
	credits int
}

// instructorSeed describes one instructor and the two courses they teach.
type instructorSeed struct {
	name    string
	courses []courseSeed
}

var defaultCatalog = []instructorSeed{
	{"Dr. Elena Vasquez", []courseSeed{{"Calculus I", 4}, {"Linear Algebra", 3}}},
	{"Prof. Marcus Webb", []courseSeed{{"Introduction to Programming", 3}, {"Data Structures", 4}}},
	{"Dr. Sofia Lindqvist", []courseSeed{{"General Physics", 4}, {"Thermodynamics", 3}}},
	{"Prof. Ahmed Hassan", []courseSeed{{"World History", 3}, {"Political Science", 3}}},
	{"Dr. Grace Okafor", []courseSeed{{"Organic Chemistry", 4}, {"Biochemistry", 3}}},
}

// CreateDefaultData seeds the default admin account and the course catalog.
// Each step is skipped when the data already exists, so the seed is safe to
// run on every start.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	var finalErr error
	if err := seedAdmin(ctx, repos.AccountRepository, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedCatalog(ctx, repos.CatalogRepository, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	return finalErr
}

func seedAdmin(ctx context.Context, accountRepo *repositories.AccountRepository, lgr zerolog.Logger) error {
	admins, err := accountRepo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if admins > 0 {
		lgr.Debug().Msg("Admin account already present, skipping seed")
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("SEED_ADMIN_PASSWORD not set, skipping default admin seed")
		return nil
	}

	admin := &models.Account{
		ID:           uuid.New(),
		Name:         "Administrator",
		Email:        defaultAdminEmail,
		PasswordHash: auth.HashPassword(password),
		Role:         models.RoleAdmin,
	}
	if err := accountRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admin account")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Seeded default admin account")
	return nil
}

func seedCatalog(ctx context.Context, catalogRepo *repositories.CatalogRepository, lgr zerolog.Logger) error {
	count, err := catalogRepo.CountInstructors(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Debug().Msg("Catalog already present, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding default catalog...")
	var finalErr error
	for _, entry := range defaultCatalog {
		instructor := &models.Instructor{Name: entry.name}
		if err := catalogRepo.CreateInstructor(ctx, instructor); err != nil {
			lgr.Error().Err(err).Str("instructor", entry.name).Msg("Failed to seed instructor")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, c := range entry.courses {
			course := &models.Course{
				Name:         c.name,
				Credits:      c.credits,
				InstructorID: instructor.ID,
			}
			if err := catalogRepo.CreateCourse(ctx, course); err != nil {
				lgr.Error().Err(err).Str("course", c.name).Msg("Failed to seed course")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Int("instructors", len(defaultCatalog)).Msg("Default catalog seeded")
	}
	return finalErr
}
