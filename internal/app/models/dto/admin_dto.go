package dto

import "github.com/google/uuid"

// StudentResponse is an admin-facing account row with enrolled course names
type StudentResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	EnrolledCourses []string  `json:"enrolledCourses"`
}

// InstructorCourseCount is the number of courses owned by one instructor
type InstructorCourseCount struct {
	InstructorID   int64  `json:"instructorId"`
	InstructorName string `json:"instructorName"`
	CourseCount    int64  `json:"courseCount"`
}

// DashboardStats aggregates counts for the admin dashboard
type DashboardStats struct {
	TotalStudents             int64                   `json:"totalStudents"`
	TotalInstructors          int64                   `json:"totalInstructors"`
	TotalCourses              int64                   `json:"totalCourses"`
	TotalEnrollments          int64                   `json:"totalEnrollments"`
	StudentsWithEnrollment    int64                   `json:"studentsWithEnrollment"`
	StudentsWithoutEnrollment int64                   `json:"studentsWithoutEnrollment"`
	CoursesPerInstructor      []InstructorCourseCount `json:"coursesPerInstructor"`
}
