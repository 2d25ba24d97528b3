package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment represents one student occupying one seat in one course.
// An account's set of enrollments is either empty or exactly 3 rows whose
// courses have 3 mutually distinct instructors; that invariant is enforced
// by the enrollment service, not by this type.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	AccountID uuid.UUID `json:"accountId" db:"account_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Account *Account `json:"account,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
