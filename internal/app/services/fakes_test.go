package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/repositories"
)

// fakeAccountRepo is an in-memory IAccountRepository.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*models.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == account.Email {
			return repositories.ErrEmailExists
		}
	}
	cp := *account
	f.accounts[account.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repositories.ErrAccountNotFound
}

func (f *fakeAccountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return repositories.ErrAccountNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) GetStudents(ctx context.Context) ([]*dto.StudentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*dto.StudentResponse
	for _, a := range f.accounts {
		if a.Role != models.RoleStudent {
			continue
		}
		out = append(out, &dto.StudentResponse{ID: a.ID, Name: a.Name, Email: a.Email, Role: string(a.Role)})
	}
	return out, nil
}

func (f *fakeAccountRepo) CountByRole(ctx context.Context, role models.RoleType) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.accounts {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}

// fakeCatalogRepo is an in-memory ICatalogRepository.
type fakeCatalogRepo struct {
	mu          sync.Mutex
	nextID      int64
	courses     map[int64]*models.Course
	instructors map[int64]*models.Instructor
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		nextID:      1,
		courses:     make(map[int64]*models.Course),
		instructors: make(map[int64]*models.Instructor),
	}
}

// addCourse seeds a course with an explicit id and instructor.
func (f *fakeCatalogRepo) addCourse(id int64, name string, instructorID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses[id] = &models.Course{ID: id, Name: name, Credits: 3, InstructorID: instructorID}
	if _, ok := f.instructors[instructorID]; !ok {
		f.instructors[instructorID] = &models.Instructor{ID: instructorID, Name: "Instructor"}
	}
}

func (f *fakeCatalogRepo) ResolveCourses(ctx context.Context, ids []int64) ([]*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[int64]struct{}, len(ids))
	var out []*models.Course
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := f.courses[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetAllCourses(ctx context.Context) ([]*dto.CourseResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*dto.CourseResponse
	for _, c := range f.courses {
		out = append(out, &dto.CourseResponse{ID: c.ID, Name: c.Name, Credits: c.Credits, InstructorID: c.InstructorID})
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repositories.ErrCourseNotFound
}

func (f *fakeCatalogRepo) CreateCourse(ctx context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	course.ID = f.nextID
	f.nextID++
	cp := *course
	f.courses[course.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) UpdateCourse(ctx context.Context, course *models.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[course.ID]; !ok {
		return repositories.ErrCourseNotFound
	}
	cp := *course
	f.courses[course.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) DeleteCourse(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.courses[id]; !ok {
		return repositories.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCatalogRepo) CountCourses(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.courses)), nil
}

func (f *fakeCatalogRepo) CreateInstructor(ctx context.Context, instructor *models.Instructor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	instructor.ID = f.nextID
	f.nextID++
	cp := *instructor
	f.instructors[instructor.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i, ok := f.instructors[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, repositories.ErrInstructorNotFound
}

func (f *fakeCatalogRepo) GetAllInstructors(ctx context.Context) ([]*dto.InstructorResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*dto.InstructorResponse
	for _, i := range f.instructors {
		out = append(out, &dto.InstructorResponse{ID: i.ID, Name: i.Name})
	}
	return out, nil
}

func (f *fakeCatalogRepo) UpdateInstructor(ctx context.Context, instructor *models.Instructor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.instructors[instructor.ID]; !ok {
		return repositories.ErrInstructorNotFound
	}
	cp := *instructor
	f.instructors[instructor.ID] = &cp
	return nil
}

func (f *fakeCatalogRepo) DeleteInstructor(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.instructors[id]; !ok {
		return repositories.ErrInstructorNotFound
	}
	delete(f.instructors, id)
	return nil
}

func (f *fakeCatalogRepo) CountInstructors(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.instructors)), nil
}

func (f *fakeCatalogRepo) CoursesPerInstructor(ctx context.Context) ([]dto.InstructorCourseCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byInstructor := make(map[int64]int64)
	for _, course := range f.courses {
		byInstructor[course.InstructorID]++
	}
	counts := []dto.InstructorCourseCount{}
	for id, instructor := range f.instructors {
		counts = append(counts, dto.InstructorCourseCount{
			InstructorID:   id,
			InstructorName: instructor.Name,
			CourseCount:    byInstructor[id],
		})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].InstructorID < counts[j].InstructorID })
	return counts, nil
}

// fakeEnrollmentRepo is an in-memory IEnrollmentRepository. Insert enforces the
// same zero-existing precondition the SQL transaction does.
type fakeEnrollmentRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[uuid.UUID][]*models.Enrollment
	names   map[uuid.UUID]string
	catalog *fakeCatalogRepo
}

func newFakeEnrollmentRepo(catalog *fakeCatalogRepo) *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		nextID:  1,
		rows:    make(map[uuid.UUID][]*models.Enrollment),
		names:   make(map[uuid.UUID]string),
		catalog: catalog,
	}
}

// setName records the display name reported for an account in classmate listings.
func (f *fakeEnrollmentRepo) setName(accountID uuid.UUID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[accountID] = name
}

func (f *fakeEnrollmentRepo) GetByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Enrollment(nil), f.rows[accountID]...), nil
}

func (f *fakeEnrollmentRepo) InsertEnrollments(ctx context.Context, accountID uuid.UUID, courseIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.rows[accountID]) > 0 {
		return repositories.ErrEnrollmentExists
	}
	f.insertLocked(accountID, courseIDs)
	return nil
}

func (f *fakeEnrollmentRepo) ReplaceEnrollments(ctx context.Context, accountID uuid.UUID, courseIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, accountID)
	f.insertLocked(accountID, courseIDs)
	return nil
}

func (f *fakeEnrollmentRepo) insertLocked(accountID uuid.UUID, courseIDs []int64) {
	for _, courseID := range courseIDs {
		f.rows[accountID] = append(f.rows[accountID], &models.Enrollment{
			ID:        f.nextID,
			AccountID: accountID,
			CourseID:  courseID,
		})
		f.nextID++
	}
}

func (f *fakeEnrollmentRepo) GetDetailsByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.EnrollmentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*dto.EnrollmentDetail
	for _, e := range f.rows[accountID] {
		out = append(out, f.detailLocked(e))
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) GetAllDetails(ctx context.Context) ([]*dto.EnrollmentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*dto.EnrollmentDetail
	for _, rows := range f.rows {
		for _, e := range rows {
			out = append(out, f.detailLocked(e))
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) detailLocked(e *models.Enrollment) *dto.EnrollmentDetail {
	d := &dto.EnrollmentDetail{ID: e.ID, AccountID: e.AccountID, CourseID: e.CourseID}
	if f.catalog != nil {
		if c, ok := f.catalog.courses[e.CourseID]; ok {
			d.CourseName = c.Name
			d.CourseCredits = c.Credits
			d.InstructorID = c.InstructorID
		}
	}
	return d
}

func (f *fakeEnrollmentRepo) GetClassmateNames(ctx context.Context, courseID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for accountID, rows := range f.rows {
		for _, e := range rows {
			if e.CourseID == courseID {
				out = append(out, f.names[accountID])
				break
			}
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) CountEnrollments(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, rows := range f.rows {
		n += int64(len(rows))
	}
	return n, nil
}

func (f *fakeEnrollmentRepo) CountEnrolledAccounts(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, rows := range f.rows {
		if len(rows) > 0 {
			n++
		}
	}
	return n, nil
}

// accountFixture builds a student account for tests.
func accountFixture(id uuid.UUID, name, email string) *models.Account {
	return &models.Account{ID: id, Name: name, Email: email, PasswordHash: "x", Role: models.RoleStudent}
}
