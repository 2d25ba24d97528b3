// Package repositories contains the data access layer backed by PostgreSQL.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository    *AccountRepository
	CatalogRepository    *CatalogRepository
	EnrollmentRepository *EnrollmentRepository
	LogRepository        *LogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:    NewAccountRepository(db),
		CatalogRepository:    NewCatalogRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		LogRepository:        NewLogRepository(db),
	}
}
