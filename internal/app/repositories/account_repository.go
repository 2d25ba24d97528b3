package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/pkg/dberrors"
)

// Account error types
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already registered")
)

// IAccountRepository defines the credential store operations
type IAccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetStudents(ctx context.Context) ([]*dto.StudentResponse, error)
	CountByRole(ctx context.Context, role models.RoleType) (int64, error)
}

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// Create inserts a new account. The caller assigns the id.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		account.ID, account.Name, account.Email, account.PasswordHash, account.Role,
	).Scan(&account.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return ErrEmailExists
		}
		return fmt.Errorf("error creating account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by its exact (case-sensitive) email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM accounts
		WHERE email = $1
	`

	var account models.Account
	err := r.db.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return &account, nil
}

// GetByID retrieves an account by id
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM accounts
		WHERE id = $1
	`

	var account models.Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return &account, nil
}

// EmailExists checks if an account exists with the exact email
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// Delete removes an account. Dependent enrollments are removed by the
// ON DELETE CASCADE constraint on the enrollments table.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// GetStudents retrieves all student accounts with their enrolled course names
func (r *AccountRepository) GetStudents(ctx context.Context) ([]*dto.StudentResponse, error) {
	query := `
		SELECT a.id, a.name, a.email, a.role,
		       COALESCE(ARRAY_REMOVE(ARRAY_AGG(c.name ORDER BY c.name), NULL), '{}')
		FROM accounts a
		LEFT JOIN enrollments e ON e.account_id = a.id
		LEFT JOIN courses c ON c.id = e.course_id
		WHERE a.role = $1
		GROUP BY a.id, a.name, a.email, a.role
		ORDER BY a.name
	`

	rows, err := r.db.Query(ctx, query, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*dto.StudentResponse
	for rows.Next() {
		var student dto.StudentResponse
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Role,
			&student.EnrolledCourses,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// CountByRole returns the number of accounts holding the given role
func (r *AccountRepository) CountByRole(ctx context.Context, role models.RoleType) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting accounts: %w", err)
	}

	return count, nil
}
