package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/repositories"
	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
)

// requiredSelectionSize is the exact number of courses in an enrollment set.
const requiredSelectionSize = 3

// EnrollmentService validates and commits enrollment requests against the
// catalog and enrollment stores. Precondition failures come back as typed
// errors; the service never holds an in-process lock across a store round-trip,
// all exclusion is delegated to store transactions.
type EnrollmentService struct {
	accountRepo    repositories.IAccountRepository
	catalogRepo    repositories.ICatalogRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	accountRepo repositories.IAccountRepository,
	catalogRepo repositories.ICatalogRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		accountRepo:    accountRepo,
		catalogRepo:    catalogRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// validateSelection runs the shared preconditions in order: exact selection
// size, every id resolves to an existing course, and the resolved courses have
// mutually distinct instructors. Duplicate submitted ids collapse under set
// resolution and therefore fail the resolution check.
func (s *EnrollmentService) validateSelection(ctx context.Context, courseIDs []int64) error {
	if len(courseIDs) != requiredSelectionSize {
		return apperrors.ErrInvalidSelectionSize
	}

	courses, err := s.catalogRepo.ResolveCourses(ctx, courseIDs)
	if err != nil {
		return fmt.Errorf("error resolving courses: %w", err)
	}
	if len(courses) != requiredSelectionSize {
		return apperrors.ErrUnknownCourse
	}

	instructors := make(map[int64]struct{}, requiredSelectionSize)
	for _, course := range courses {
		instructors[course.InstructorID] = struct{}{}
	}
	if len(instructors) != requiredSelectionSize {
		return apperrors.ErrDuplicateInstructor
	}

	return nil
}

// Enroll creates an account's initial enrollment set. It fails with
// ErrAlreadyEnrolled when the account holds any enrollment; the zero-enrollment
// precondition is re-validated inside the insert transaction so two concurrent
// calls for the same account cannot both succeed.
func (s *EnrollmentService) Enroll(ctx context.Context, accountID uuid.UUID, courseIDs []int64) error {
	if err := s.validateSelection(ctx, courseIDs); err != nil {
		return err
	}

	existing, err := s.enrollmentRepo.GetByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("error retrieving enrollments: %w", err)
	}
	if len(existing) > 0 {
		return apperrors.ErrAlreadyEnrolled
	}

	if err := s.enrollmentRepo.InsertEnrollments(ctx, accountID, courseIDs); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentExists) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error inserting enrollments: %w", err)
	}

	s.logger.Info().
		Str("accountId", accountID.String()).
		Ints64("courseIds", courseIDs).
		Msg("Enrollment created")

	return nil
}

// ReplaceEnrollment wholesale-replaces an account's enrollment set. It is valid
// whether or not prior enrollments exist; the delete and inserts run in one
// transaction so readers never observe an intermediate state.
func (s *EnrollmentService) ReplaceEnrollment(ctx context.Context, accountID uuid.UUID, courseIDs []int64) error {
	if err := s.validateSelection(ctx, courseIDs); err != nil {
		return err
	}

	if err := s.enrollmentRepo.ReplaceEnrollments(ctx, accountID, courseIDs); err != nil {
		return fmt.Errorf("error replacing enrollments: %w", err)
	}

	s.logger.Info().
		Str("accountId", accountID.String()).
		Ints64("courseIds", courseIDs).
		Msg("Enrollment replaced")

	return nil
}

// GetAccountEnrollments retrieves the fully joined enrollment rows for an account
func (s *EnrollmentService) GetAccountEnrollments(ctx context.Context, accountID uuid.UUID) ([]*dto.EnrollmentDetail, error) {
	details, err := s.enrollmentRepo.GetDetailsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	if details == nil {
		details = []*dto.EnrollmentDetail{}
	}
	return details, nil
}

// GetAllEnrollments retrieves every enrollment row joined with account, course,
// and instructor data.
func (s *EnrollmentService) GetAllEnrollments(ctx context.Context) ([]*dto.EnrollmentDetail, error) {
	details, err := s.enrollmentRepo.GetAllDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	if details == nil {
		details = []*dto.EnrollmentDetail{}
	}
	return details, nil
}

// GetClassmates retrieves the names of students sharing a course, excluding the
// requesting account's own name.
func (s *EnrollmentService) GetClassmates(ctx context.Context, courseID int64, accountID uuid.UUID) (*dto.ClassmatesResponse, error) {
	if _, err := s.catalogRepo.GetCourseByID(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	names, err := s.enrollmentRepo.GetClassmateNames(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classmates: %w", err)
	}

	var self string
	if account, err := s.accountRepo.GetByID(ctx, accountID); err == nil {
		self = account.Name
	}

	classmates := make([]string, 0, len(names))
	for _, name := range names {
		if self != "" && name == self {
			continue
		}
		classmates = append(classmates, name)
	}

	return &dto.ClassmatesResponse{
		CourseID:   courseID,
		Classmates: classmates,
	}, nil
}
