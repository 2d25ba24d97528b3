package models

// Course represents a catalog offering with exactly one owning instructor.
type Course struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Credits      int    `json:"credits" db:"credits"`
	InstructorID int64  `json:"instructorId" db:"instructor_id"`

	// Relations (populated when needed)
	Instructor *Instructor `json:"instructor,omitempty"`
}
