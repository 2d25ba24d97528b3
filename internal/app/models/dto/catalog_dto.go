package dto

// CourseResponse is a catalog course with its owning instructor's name
type CourseResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Credits        int    `json:"credits"`
	InstructorID   int64  `json:"instructorId"`
	InstructorName string `json:"instructorName"`
}

// InstructorResponse is an instructor with the names of the courses they teach
type InstructorResponse struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Courses []string `json:"courses"`
}

// CreateInstructorRequest is the payload for creating an instructor
type CreateInstructorRequest struct {
	Name string `json:"name" binding:"required,min=2,max=150"`
}

// UpdateInstructorRequest is the payload for renaming an instructor
type UpdateInstructorRequest struct {
	Name string `json:"name" binding:"required,min=2,max=150"`
}

// CreateCourseRequest is the payload for creating a course
type CreateCourseRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=150"`
	Credits      int    `json:"credits" binding:"omitempty,min=1,max=10"`
	InstructorID int64  `json:"instructorId" binding:"required"`
}

// UpdateCourseRequest is the payload for updating a course
type UpdateCourseRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=150"`
	Credits      int    `json:"credits" binding:"omitempty,min=1,max=10"`
	InstructorID int64  `json:"instructorId" binding:"required"`
}
