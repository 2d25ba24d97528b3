package dto

import "github.com/google/uuid"

// EnrollmentRequest is the payload for enrolling or replacing an enrollment set.
// Exactly 3 course ids are required; the service enforces the distinct-instructor
// rule on the resolved courses.
type EnrollmentRequest struct {
	AccountID uuid.UUID `json:"accountId" binding:"required"`
	CourseIDs []int64   `json:"courseIds" binding:"required"`
}

// EnrollmentDetail is a fully joined enrollment row for listings
type EnrollmentDetail struct {
	ID             int64     `json:"id"`
	AccountID      uuid.UUID `json:"accountId"`
	AccountName    string    `json:"accountName"`
	AccountEmail   string    `json:"accountEmail"`
	CourseID       int64     `json:"courseId"`
	CourseName     string    `json:"courseName"`
	CourseCredits  int       `json:"courseCredits"`
	InstructorID   int64     `json:"instructorId"`
	InstructorName string    `json:"instructorName"`
}

// ClassmatesResponse lists the display names of students sharing a course
type ClassmatesResponse struct {
	CourseID   int64    `json:"courseId"`
	Classmates []string `json:"classmates"`
}
