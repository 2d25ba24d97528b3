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
)

// Enrollment error types
var (
	// ErrEnrollmentExists is returned when the zero-enrollments precondition
	// fails inside the insert transaction.
	ErrEnrollmentExists = errors.New("account already has enrollments")
)

// IEnrollmentRepository defines the enrollment store operations
type IEnrollmentRepository interface {
	GetByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.Enrollment, error)
	InsertEnrollments(ctx context.Context, accountID uuid.UUID, courseIDs []int64) error
	ReplaceEnrollments(ctx context.Context, accountID uuid.UUID, courseIDs []int64) error
	GetDetailsByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.EnrollmentDetail, error)
	GetAllDetails(ctx context.Context) ([]*dto.EnrollmentDetail, error)
	GetClassmateNames(ctx context.Context, courseID int64) ([]string, error)
	CountEnrollments(ctx context.Context) (int64, error)
	CountEnrolledAccounts(ctx context.Context) (int64, error)
}

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// GetByAccount retrieves all enrollment rows for an account
func (r *EnrollmentRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.Enrollment, error) {
	query := `
		SELECT id, account_id, course_id, created_at
		FROM enrollments
		WHERE account_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.AccountID,
			&enrollment.CourseID,
			&enrollment.CreatedAt,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// InsertEnrollments inserts one row per course for the account, all inside a
// serializable transaction that re-validates the zero-enrollments precondition.
// Either every row exists after commit or none do; two concurrent calls for the
// same account cannot both commit.
func (r *EnrollmentRepository) InsertEnrollments(ctx context.Context, accountID uuid.UUID, courseIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var existing int64
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE account_id = $1`, accountID).Scan(&existing)
	if err != nil {
		return fmt.Errorf("error checking existing enrollments: %w", err)
	}
	if existing > 0 {
		return ErrEnrollmentExists
	}

	if err := insertRows(ctx, tx, accountID, courseIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ReplaceEnrollments deletes every enrollment row for the account and inserts
// one row per course, as a single transaction. Concurrent readers observe either
// the old set or the new set, never an empty or partial one.
func (r *EnrollmentRepository) ReplaceEnrollments(ctx context.Context, accountID uuid.UUID, courseIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM enrollments WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("error deleting enrollments: %w", err)
	}

	if err := insertRows(ctx, tx, accountID, courseIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertRows(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, courseIDs []int64) error {
	for _, courseID := range courseIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO enrollments (account_id, course_id) VALUES ($1, $2)`,
			accountID, courseID); err != nil {
			return fmt.Errorf("error inserting enrollment: %w", err)
		}
	}
	return nil
}

const enrollmentDetailQuery = `
	SELECT e.id, e.account_id, a.name, a.email,
	       e.course_id, c.name, c.credits,
	       c.instructor_id, i.name
	FROM enrollments e
	JOIN accounts a ON a.id = e.account_id
	JOIN courses c ON c.id = e.course_id
	JOIN instructors i ON i.id = c.instructor_id
`

// GetDetailsByAccount retrieves fully joined enrollment rows for an account
func (r *EnrollmentRepository) GetDetailsByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.EnrollmentDetail, error) {
	rows, err := r.db.Query(ctx, enrollmentDetailQuery+` WHERE e.account_id = $1 ORDER BY e.id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDetails(rows)
}

// GetAllDetails retrieves fully joined enrollment rows for every account
func (r *EnrollmentRepository) GetAllDetails(ctx context.Context) ([]*dto.EnrollmentDetail, error) {
	rows, err := r.db.Query(ctx, enrollmentDetailQuery+` ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDetails(rows)
}

func scanDetails(rows pgx.Rows) ([]*dto.EnrollmentDetail, error) {
	var details []*dto.EnrollmentDetail
	for rows.Next() {
		var detail dto.EnrollmentDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.AccountID,
			&detail.AccountName,
			&detail.AccountEmail,
			&detail.CourseID,
			&detail.CourseName,
			&detail.CourseCredits,
			&detail.InstructorID,
			&detail.InstructorName,
		); err != nil {
			return nil, err
		}
		details = append(details, &detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

// GetClassmateNames retrieves the display names of every student enrolled in a course
func (r *EnrollmentRepository) GetClassmateNames(ctx context.Context, courseID int64) ([]string, error) {
	query := `
		SELECT a.name
		FROM enrollments e
		JOIN accounts a ON a.id = e.account_id
		WHERE e.course_id = $1
		ORDER BY a.name
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

// CountEnrollments returns the total number of enrollment rows
func (r *EnrollmentRepository) CountEnrollments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}

// CountEnrolledAccounts returns the number of accounts holding at least one enrollment
func (r *EnrollmentRepository) CountEnrolledAccounts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT account_id) FROM enrollments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting enrolled accounts: %w", err)
	}
	return count, nil
}
