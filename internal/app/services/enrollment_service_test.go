package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
)

// newEnrollmentFixture builds a service over in-memory stores with a catalog of
// six courses taught by three instructors (two courses each).
func newEnrollmentFixture() (*EnrollmentService, *fakeAccountRepo, *fakeCatalogRepo, *fakeEnrollmentRepo) {
	accounts := newFakeAccountRepo()
	catalog := newFakeCatalogRepo()
	enrollments := newFakeEnrollmentRepo(catalog)

	// Instructor 10 teaches courses 1 and 2, instructor 20 teaches 3 and 4,
	// instructor 30 teaches 5 and 6.
	catalog.addCourse(1, "Calculus I", 10)
	catalog.addCourse(2, "Linear Algebra", 10)
	catalog.addCourse(3, "Programming", 20)
	catalog.addCourse(4, "Data Structures", 20)
	catalog.addCourse(5, "Physics", 30)
	catalog.addCourse(6, "Thermodynamics", 30)

	svc := NewEnrollmentService(accounts, catalog, enrollments, zerolog.Nop())
	return svc, accounts, catalog, enrollments
}

func TestEnrollRejectsWrongSelectionSize(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()
	accountID := uuid.New()

	for _, courseIDs := range [][]int64{
		{},
		{1},
		{1, 3},
		{1, 3, 5, 6},
	} {
		err := svc.Enroll(context.Background(), accountID, courseIDs)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSelectionSize, "courseIDs=%v", courseIDs)
	}
}

func TestEnrollRejectsUnknownCourse(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()

	err := svc.Enroll(context.Background(), uuid.New(), []int64{1, 3, 999})
	assert.ErrorIs(t, err, apperrors.ErrUnknownCourse)
}

func TestEnrollRejectsDuplicateSubmittedIDs(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()

	// Duplicates collapse under set resolution, so only two courses resolve.
	err := svc.Enroll(context.Background(), uuid.New(), []int64{1, 1, 3})
	assert.ErrorIs(t, err, apperrors.ErrUnknownCourse)
}

func TestEnrollRejectsDuplicateInstructor(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()

	// Courses 1 and 2 share instructor 10.
	err := svc.Enroll(context.Background(), uuid.New(), []int64{1, 2, 3})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateInstructor)
}

func TestEnrollSucceedsWithValidSelection(t *testing.T) {
	svc, _, _, enrollments := newEnrollmentFixture()
	accountID := uuid.New()

	err := svc.Enroll(context.Background(), accountID, []int64{1, 3, 5})
	require.NoError(t, err)

	rows, err := enrollments.GetByAccount(context.Background(), accountID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestEnrollRejectsSecondEnrollment(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()
	accountID := uuid.New()

	require.NoError(t, svc.Enroll(context.Background(), accountID, []int64{1, 3, 5}))

	// A repeat of the identical selection is still rejected: enrollment is
	// not idempotent.
	err := svc.Enroll(context.Background(), accountID, []int64{1, 3, 5})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	err = svc.Enroll(context.Background(), accountID, []int64{2, 4, 6})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollValidationOrder(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()
	accountID := uuid.New()

	require.NoError(t, svc.Enroll(context.Background(), accountID, []int64{1, 3, 5}))

	// Selection rules are checked before the already-enrolled check.
	err := svc.Enroll(context.Background(), accountID, []int64{1, 3})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSelectionSize)

	err = svc.Enroll(context.Background(), accountID, []int64{1, 2, 3})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateInstructor)
}

func TestReplaceEnrollmentSwapsSelection(t *testing.T) {
	svc, _, _, enrollments := newEnrollmentFixture()
	accountID := uuid.New()

	require.NoError(t, svc.Enroll(context.Background(), accountID, []int64{1, 3, 5}))
	require.NoError(t, svc.ReplaceEnrollment(context.Background(), accountID, []int64{2, 4, 6}))

	rows, err := enrollments.GetByAccount(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	got := map[int64]bool{}
	for _, e := range rows {
		got[e.CourseID] = true
	}
	assert.Equal(t, map[int64]bool{2: true, 4: true, 6: true}, got)
}

func TestReplaceEnrollmentValidatesBeforeDeleting(t *testing.T) {
	svc, _, _, enrollments := newEnrollmentFixture()
	accountID := uuid.New()

	require.NoError(t, svc.Enroll(context.Background(), accountID, []int64{1, 3, 5}))

	err := svc.ReplaceEnrollment(context.Background(), accountID, []int64{2, 4, 999})
	assert.ErrorIs(t, err, apperrors.ErrUnknownCourse)

	// The original selection survives a failed replacement.
	rows, err := enrollments.GetByAccount(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	got := map[int64]bool{}
	for _, e := range rows {
		got[e.CourseID] = true
	}
	assert.Equal(t, map[int64]bool{1: true, 3: true, 5: true}, got)
}

func TestReplaceEnrollmentWithoutPriorEnrollment(t *testing.T) {
	svc, _, _, enrollments := newEnrollmentFixture()
	accountID := uuid.New()

	require.NoError(t, svc.ReplaceEnrollment(context.Background(), accountID, []int64{1, 3, 5}))

	rows, err := enrollments.GetByAccount(context.Background(), accountID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestGetAccountEnrollmentsEmpty(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()

	details, err := svc.GetAccountEnrollments(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}

func TestGetClassmatesExcludesSelf(t *testing.T) {
	svc, accounts, _, enrollments := newEnrollmentFixture()
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	require.NoError(t, accounts.Create(ctx, accountFixture(alice, "Alice", "alice@example.com")))
	require.NoError(t, accounts.Create(ctx, accountFixture(bob, "Bob", "bob@example.com")))
	enrollments.setName(alice, "Alice")
	enrollments.setName(bob, "Bob")

	require.NoError(t, svc.Enroll(ctx, alice, []int64{1, 3, 5}))
	require.NoError(t, svc.Enroll(ctx, bob, []int64{1, 4, 6}))

	resp, err := svc.GetClassmates(ctx, 1, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.CourseID)
	assert.Equal(t, []string{"Bob"}, resp.Classmates)
}

func TestGetClassmatesUnknownCourse(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()

	_, err := svc.GetClassmates(context.Background(), 999, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
