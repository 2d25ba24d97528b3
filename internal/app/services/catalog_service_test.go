package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
)

func newCatalogFixture() (*CatalogService, *fakeAccountRepo, *fakeCatalogRepo, *fakeEnrollmentRepo) {
	accounts := newFakeAccountRepo()
	catalog := newFakeCatalogRepo()
	enrollments := newFakeEnrollmentRepo(catalog)
	svc := NewCatalogService(accounts, catalog, enrollments, zerolog.Nop())
	return svc, accounts, catalog, enrollments
}

func TestCreateCourseRequiresInstructor(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	_, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Name:         "Calculus I",
		InstructorID: 999,
	})
	assert.ErrorIs(t, err, apperrors.ErrInstructorNotFound)
}

func TestCreateCourseDefaultsCredits(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	ctx := context.Background()

	instructor, err := svc.CreateInstructor(ctx, &dto.CreateInstructorRequest{Name: "Dr. Vasquez"})
	require.NoError(t, err)

	course, err := svc.CreateCourse(ctx, &dto.CreateCourseRequest{
		Name:         "Calculus I",
		InstructorID: instructor.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, course.Credits)
	assert.Equal(t, "Dr. Vasquez", course.InstructorName)
}

func TestUpdateCourseUnknownCourse(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	_, err := svc.UpdateCourse(context.Background(), 999, &dto.UpdateCourseRequest{
		Name:         "Renamed",
		InstructorID: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUpdateInstructorRenames(t *testing.T) {
	svc, _, catalog, _ := newCatalogFixture()
	ctx := context.Background()

	instructor, err := svc.CreateInstructor(ctx, &dto.CreateInstructorRequest{Name: "Dr. Webb"})
	require.NoError(t, err)

	updated, err := svc.UpdateInstructor(ctx, instructor.ID, &dto.UpdateInstructorRequest{Name: "Prof. Webb"})
	require.NoError(t, err)
	assert.Equal(t, "Prof. Webb", updated.Name)

	stored, err := catalog.GetInstructorByID(ctx, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Prof. Webb", stored.Name)
}

func TestDeleteStudentUnknownAccount(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	err := svc.DeleteStudent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestGetDashboardStatsCounts(t *testing.T) {
	svc, accounts, catalog, enrollments := newCatalogFixture()
	ctx := context.Background()

	catalog.addCourse(1, "Calculus I", 10)
	catalog.addCourse(2, "Programming", 20)
	catalog.addCourse(3, "Physics", 30)

	student := uuid.New()
	require.NoError(t, accounts.Create(ctx, accountFixture(student, "Ana", "ana@example.com")))
	admin := accountFixture(uuid.New(), "Root", "root@example.com")
	admin.Role = models.RoleAdmin
	require.NoError(t, accounts.Create(ctx, admin))

	require.NoError(t, enrollments.InsertEnrollments(ctx, student, []int64{1, 2, 3}))

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Equal(t, int64(3), stats.TotalInstructors)
	assert.Equal(t, int64(3), stats.TotalCourses)
	assert.Equal(t, int64(3), stats.TotalEnrollments)
	assert.Equal(t, int64(1), stats.StudentsWithEnrollment)
	assert.Equal(t, int64(0), stats.StudentsWithoutEnrollment)

	require.Len(t, stats.CoursesPerInstructor, 3)
	for _, c := range stats.CoursesPerInstructor {
		assert.Equal(t, int64(1), c.CourseCount)
	}
}
