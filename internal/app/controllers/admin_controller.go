package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/services"
	"github.com/dcastillo/campusenroll/internal/middleware"
)

// AdminController handles the admin management surface: students, instructors,
// courses, enrollments and dashboard aggregates.
type AdminController struct {
	catalogService    *services.CatalogService
	enrollmentService *services.EnrollmentService
	logService        *services.LogService
	logger            zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	catalogService *services.CatalogService,
	enrollmentService *services.EnrollmentService,
	logService *services.LogService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		catalogService:    catalogService,
		enrollmentService: enrollmentService,
		logService:        logService,
		logger:            logger,
	}
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListStudents lists all student accounts
// @Summary List students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Students"
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	students, err := c.catalogService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse(students))
}

// DeleteStudent removes a student account and its enrollments
// @Summary Delete a student
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID (UUID)"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Router /admin/students/{id} [delete]
func (c *AdminController) DeleteStudent(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid account id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.catalogService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "admin.student.delete", "deleted student "+id.String(), requestMeta(ctx))
	ctx.JSON(http.StatusOK, dto.SuccessResponse(gin.H{"message": "Student deleted"}))
}

// CreateInstructor adds an instructor
// @Summary Create an instructor
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstructorRequest true "Instructor payload"
// @Success 201 {object} dto.APIResponse "Created"
// @Router /admin/instructors [post]
func (c *AdminController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	instructor, err := c.catalogService.CreateInstructor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "admin.instructor.create", "created instructor "+instructor.Name, requestMeta(ctx))
	ctx.JSON(http.StatusCreated, dto.SuccessResponse(instructor))
}

// UpdateInstructor renames an instructor
// @Summary Update an instructor
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param request body dto.UpdateInstructorRequest true "Instructor payload"
// @Success 200 {object} dto.APIResponse "Updated"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Router /admin/instructors/{id} [put]
func (c *AdminController) UpdateInstructor(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateInstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	instructor, err := c.catalogService.UpdateInstructor(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(instructor))
}

// DeleteInstructor removes an instructor and, via cascade, their courses
// @Summary Delete an instructor
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Router /admin/instructors/{id} [delete]
func (c *AdminController) DeleteInstructor(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.catalogService.DeleteInstructor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "admin.instructor.delete",
		"deleted instructor "+strconv.FormatInt(id, 10), requestMeta(ctx))
	ctx.JSON(http.StatusOK, dto.SuccessResponse(gin.H{"message": "Instructor deleted"}))
}

// CreateCourse adds a course
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course payload"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Created"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Router /admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.catalogService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "admin.course.create", "created course "+course.Name, requestMeta(ctx))
	ctx.JSON(http.StatusCreated, dto.SuccessResponse(course))
}

// UpdateCourse updates a course
// @Summary Update a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course payload"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Updated"
// @Failure 404 {object} dto.ErrorResponse "Course or instructor not found"
// @Router /admin/courses/{id} [put]
func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.catalogService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(course))
}

// DeleteCourse removes a course and, via cascade, its enrollments
// @Summary Delete a course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [delete]
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.catalogService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "admin.course.delete",
		"deleted course "+strconv.FormatInt(id, 10), requestMeta(ctx))
	ctx.JSON(http.StatusOK, dto.SuccessResponse(gin.H{"message": "Course deleted"}))
}

// ListEnrollments lists every enrollment row
// @Summary List all enrollments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentDetail} "Enrollments"
// @Router /admin/enrollments [get]
func (c *AdminController) ListEnrollments(ctx *gin.Context) {
	details, err := c.enrollmentService.GetAllEnrollments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse(details))
}

// GetDashboardStats returns aggregate counts for the admin dashboard
// @Summary Admin dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats} "Stats"
// @Router /admin/dashboard [get]
func (c *AdminController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.catalogService.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse(stats))
}
