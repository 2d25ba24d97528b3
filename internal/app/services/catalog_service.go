package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/repositories"
	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
)

// defaultCredits is assigned when a course is created without a credit count.
const defaultCredits = 3

// CatalogService handles the admin-facing management of instructors, courses,
// and student accounts, plus the read-only catalog listings.
type CatalogService struct {
	accountRepo    repositories.IAccountRepository
	catalogRepo    repositories.ICatalogRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	accountRepo repositories.IAccountRepository,
	catalogRepo repositories.ICatalogRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		accountRepo:    accountRepo,
		catalogRepo:    catalogRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// ListCourses retrieves all catalog courses with instructor names
func (s *CatalogService) ListCourses(ctx context.Context) ([]*dto.CourseResponse, error) {
	courses, err := s.catalogRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	if courses == nil {
		courses = []*dto.CourseResponse{}
	}
	return courses, nil
}

// ListInstructors retrieves all instructors with their course names
func (s *CatalogService) ListInstructors(ctx context.Context) ([]*dto.InstructorResponse, error) {
	instructors, err := s.catalogRepo.GetAllInstructors(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing instructors: %w", err)
	}
	if instructors == nil {
		instructors = []*dto.InstructorResponse{}
	}
	return instructors, nil
}

// CreateInstructor adds a new instructor
func (s *CatalogService) CreateInstructor(ctx context.Context, req *dto.CreateInstructorRequest) (*models.Instructor, error) {
	instructor := &models.Instructor{Name: req.Name}
	if err := s.catalogRepo.CreateInstructor(ctx, instructor); err != nil {
		return nil, fmt.Errorf("error creating instructor: %w", err)
	}

	s.logger.Info().Int64("instructorId", instructor.ID).Msg("Instructor created")
	return instructor, nil
}

// UpdateInstructor renames an instructor
func (s *CatalogService) UpdateInstructor(ctx context.Context, id int64, req *dto.UpdateInstructorRequest) (*models.Instructor, error) {
	instructor, err := s.catalogRepo.GetInstructorByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInstructorNotFound) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	instructor.Name = req.Name
	if err := s.catalogRepo.UpdateInstructor(ctx, instructor); err != nil {
		return nil, fmt.Errorf("error updating instructor: %w", err)
	}

	return instructor, nil
}

// DeleteInstructor removes an instructor and, by cascade, their courses and
// the enrollments in those courses.
func (s *CatalogService) DeleteInstructor(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteInstructor(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrInstructorNotFound) {
			return apperrors.ErrInstructorNotFound
		}
		return fmt.Errorf("error deleting instructor: %w", err)
	}

	s.logger.Info().Int64("instructorId", id).Msg("Instructor deleted")
	return nil
}

// CreateCourse adds a new course owned by an existing instructor
func (s *CatalogService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	instructor, err := s.catalogRepo.GetInstructorByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, repositories.ErrInstructorNotFound) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	credits := req.Credits
	if credits == 0 {
		credits = defaultCredits
	}

	course := &models.Course{
		Name:         req.Name,
		Credits:      credits,
		InstructorID: req.InstructorID,
	}
	if err := s.catalogRepo.CreateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseId", course.ID).Msg("Course created")

	return &dto.CourseResponse{
		ID:             course.ID,
		Name:           course.Name,
		Credits:        course.Credits,
		InstructorID:   course.InstructorID,
		InstructorName: instructor.Name,
	}, nil
}

// UpdateCourse updates a course's name, credits, and owning instructor
func (s *CatalogService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.catalogRepo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	instructor, err := s.catalogRepo.GetInstructorByID(ctx, req.InstructorID)
	if err != nil {
		if errors.Is(err, repositories.ErrInstructorNotFound) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	course.Name = req.Name
	if req.Credits != 0 {
		course.Credits = req.Credits
	}
	course.InstructorID = req.InstructorID

	if err := s.catalogRepo.UpdateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return &dto.CourseResponse{
		ID:             course.ID,
		Name:           course.Name,
		Credits:        course.Credits,
		InstructorID:   course.InstructorID,
		InstructorName: instructor.Name,
	}, nil
}

// DeleteCourse removes a course and, by cascade, its enrollments
func (s *CatalogService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	s.logger.Info().Int64("courseId", id).Msg("Course deleted")
	return nil
}

// ListStudents retrieves all student accounts with their enrolled course names
func (s *CatalogService) ListStudents(ctx context.Context) ([]*dto.StudentResponse, error) {
	students, err := s.accountRepo.GetStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	if students == nil {
		students = []*dto.StudentResponse{}
	}
	return students, nil
}

// DeleteStudent removes an account and, by cascade, its enrollments
func (s *CatalogService) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("error deleting account: %w", err)
	}

	s.logger.Info().Str("accountId", id.String()).Msg("Account deleted")
	return nil
}

// GetDashboardStats aggregates the counts for the admin dashboard
func (s *CatalogService) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	students, err := s.accountRepo.CountByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	instructors, err := s.catalogRepo.CountInstructors(ctx)
	if err != nil {
		return nil, err
	}

	courses, err := s.catalogRepo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.CountEnrollments(ctx)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.CountEnrolledAccounts(ctx)
	if err != nil {
		return nil, err
	}

	perInstructor, err := s.catalogRepo.CoursesPerInstructor(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalStudents:             students,
		TotalInstructors:          instructors,
		TotalCourses:              courses,
		TotalEnrollments:          enrollments,
		StudentsWithEnrollment:    enrolled,
		StudentsWithoutEnrollment: students - enrolled,
		CoursesPerInstructor:      perInstructor,
	}, nil
}
