package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
)

// Catalog error types
var (
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrCourseNotFound     = errors.New("course not found")
)

// ICatalogRepository defines the catalog store operations for courses and instructors
type ICatalogRepository interface {
	ResolveCourses(ctx context.Context, ids []int64) ([]*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*dto.CourseResponse, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
	CountCourses(ctx context.Context) (int64, error)

	CreateInstructor(ctx context.Context, instructor *models.Instructor) error
	GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error)
	GetAllInstructors(ctx context.Context) ([]*dto.InstructorResponse, error)
	UpdateInstructor(ctx context.Context, instructor *models.Instructor) error
	DeleteInstructor(ctx context.Context, id int64) error
	CountInstructors(ctx context.Context) (int64, error)
	CoursesPerInstructor(ctx context.Context) ([]dto.InstructorCourseCount, error)
}

// CatalogRepository handles database operations for courses and instructors
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

// ResolveCourses retrieves the courses matching the submitted ids. Resolution is
// set-based: duplicate submitted ids collapse to a single row, so the caller can
// compare the result size against the submitted size to detect both unknown and
// duplicated ids.
func (r *CatalogRepository) ResolveCourses(ctx context.Context, ids []int64) ([]*models.Course, error) {
	query := `
		SELECT id, name, credits, instructor_id
		FROM courses
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Credits,
			&course.InstructorID,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetAllCourses retrieves all courses with their instructor names
func (r *CatalogRepository) GetAllCourses(ctx context.Context) ([]*dto.CourseResponse, error) {
	query := `
		SELECT c.id, c.name, c.credits, c.instructor_id, i.name
		FROM courses c
		JOIN instructors i ON i.id = c.instructor_id
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*dto.CourseResponse
	for rows.Next() {
		var course dto.CourseResponse
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Credits,
			&course.InstructorID,
			&course.InstructorName,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetCourseByID retrieves a course by id
func (r *CatalogRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, name, credits, instructor_id
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Credits,
		&course.InstructorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// CreateCourse inserts a new course
func (r *CatalogRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (name, credits, instructor_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, course.Name, course.Credits, course.InstructorID).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// UpdateCourse updates an existing course
func (r *CatalogRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, credits = $2, instructor_id = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, course.Name, course.Credits, course.InstructorID, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}

// DeleteCourse removes a course. Dependent enrollments are removed by the
// ON DELETE CASCADE constraint.
func (r *CatalogRepository) DeleteCourse(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}

// CountCourses returns the number of catalog courses
func (r *CatalogRepository) CountCourses(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// CreateInstructor inserts a new instructor
func (r *CatalogRepository) CreateInstructor(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (name)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, instructor.Name).Scan(&instructor.ID)
	if err != nil {
		return fmt.Errorf("error creating instructor: %w", err)
	}

	return nil
}

// GetInstructorByID retrieves an instructor by id
func (r *CatalogRepository) GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error) {
	query := `
		SELECT id, name
		FROM instructors
		WHERE id = $1
	`

	var instructor models.Instructor
	err := r.db.QueryRow(ctx, query, id).Scan(&instructor.ID, &instructor.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	return &instructor, nil
}

// GetAllInstructors retrieves all instructors with the names of their courses
func (r *CatalogRepository) GetAllInstructors(ctx context.Context) ([]*dto.InstructorResponse, error) {
	query := `
		SELECT i.id, i.name,
		       COALESCE(ARRAY_REMOVE(ARRAY_AGG(c.name ORDER BY c.name), NULL), '{}')
		FROM instructors i
		LEFT JOIN courses c ON c.instructor_id = i.id
		GROUP BY i.id, i.name
		ORDER BY i.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []*dto.InstructorResponse
	for rows.Next() {
		var instructor dto.InstructorResponse
		if err := rows.Scan(
			&instructor.ID,
			&instructor.Name,
			&instructor.Courses,
		); err != nil {
			return nil, err
		}
		instructors = append(instructors, &instructor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instructors, nil
}

// UpdateInstructor renames an instructor
func (r *CatalogRepository) UpdateInstructor(ctx context.Context, instructor *models.Instructor) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE instructors SET name = $1 WHERE id = $2`, instructor.Name, instructor.ID)
	if err != nil {
		return fmt.Errorf("error updating instructor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrInstructorNotFound
	}

	return nil
}

// DeleteInstructor removes an instructor. Their courses (and transitively the
// enrollments in those courses) are removed by ON DELETE CASCADE constraints.
func (r *CatalogRepository) DeleteInstructor(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting instructor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrInstructorNotFound
	}

	return nil
}

// CountInstructors returns the number of instructors
func (r *CatalogRepository) CountInstructors(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM instructors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting instructors: %w", err)
	}
	return count, nil
}

// CoursesPerInstructor returns the number of courses each instructor owns,
// including instructors with no courses.
func (r *CatalogRepository) CoursesPerInstructor(ctx context.Context) ([]dto.InstructorCourseCount, error) {
	query := `
		SELECT i.id, i.name, COUNT(c.id)
		FROM instructors i
		LEFT JOIN courses c ON c.instructor_id = i.id
		GROUP BY i.id, i.name
		ORDER BY i.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error counting courses per instructor: %w", err)
	}
	defer rows.Close()

	counts := []dto.InstructorCourseCount{}
	for rows.Next() {
		var c dto.InstructorCourseCount
		if err := rows.Scan(&c.InstructorID, &c.InstructorName, &c.CourseCount); err != nil {
			return nil, fmt.Errorf("error scanning instructor course count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
