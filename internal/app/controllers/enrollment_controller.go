package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/services"
	"github.com/dcastillo/campusenroll/internal/middleware"
	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
)

// EnrollmentController handles enrollment operations for students
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	logService        *services.LogService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, logService *services.LogService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logService:        logService,
		logger:            logger,
	}
}

// bindSelfScoped binds the enrollment payload and rejects requests targeting a
// different account than the token's subject.
func (c *EnrollmentController) bindSelfScoped(ctx *gin.Context) (*dto.EnrollmentRequest, bool) {
	var req dto.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid enrollment payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	accountID, ok := callerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	if req.AccountID != accountID {
		c.logService.Security(ctx.Request.Context(), "enrollment.scope",
			"attempt to modify enrollment of account "+req.AccountID.String(), requestMeta(ctx))
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return nil, false
	}

	return &req, true
}

// Enroll creates the caller's enrollment
// @Summary Enroll in courses
// @Description Enrolls the authenticated student in exactly 3 courses taught by 3 distinct instructors. Fails if the student already has an enrollment.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollmentRequest true "Course selection"
// @Success 201 {object} dto.APIResponse{data=[]dto.EnrollmentDetail} "Enrollment created"
// @Failure 400 {object} dto.ErrorResponse "Selection violates an enrollment rule"
// @Failure 403 {object} dto.ErrorResponse "Payload targets another account"
// @Failure 409 {object} dto.ErrorResponse "Account already enrolled"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	req, ok := c.bindSelfScoped(ctx)
	if !ok {
		return
	}

	if err := c.enrollmentService.Enroll(ctx.Request.Context(), req.AccountID, req.CourseIDs); err != nil {
		c.logService.Error(ctx.Request.Context(), "enrollment.create", err, requestMeta(ctx))
		middleware.HandleAPIError(ctx, err)
		return
	}

	details, err := c.enrollmentService.GetAccountEnrollments(ctx.Request.Context(), req.AccountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "enrollment.create",
		fmt.Sprintf("enrolled in courses %v", req.CourseIDs), requestMeta(ctx))
	ctx.JSON(http.StatusCreated, dto.SuccessResponse(details))
}

// Replace swaps the caller's enrollment for a new selection
// @Summary Replace enrollment
// @Description Atomically replaces the authenticated student's current selection with a new set of 3 courses. The new set is validated with the same rules as enrollment.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollmentRequest true "New course selection"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentDetail} "Enrollment replaced"
// @Failure 400 {object} dto.ErrorResponse "Selection violates an enrollment rule"
// @Failure 403 {object} dto.ErrorResponse "Payload targets another account"
// @Router /enrollments [put]
func (c *EnrollmentController) Replace(ctx *gin.Context) {
	req, ok := c.bindSelfScoped(ctx)
	if !ok {
		return
	}

	if err := c.enrollmentService.ReplaceEnrollment(ctx.Request.Context(), req.AccountID, req.CourseIDs); err != nil {
		c.logService.Error(ctx.Request.Context(), "enrollment.replace", err, requestMeta(ctx))
		middleware.HandleAPIError(ctx, err)
		return
	}

	details, err := c.enrollmentService.GetAccountEnrollments(ctx.Request.Context(), req.AccountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logService.Audit(ctx.Request.Context(), "enrollment.replace",
		fmt.Sprintf("replaced enrollment with courses %v", req.CourseIDs), requestMeta(ctx))
	ctx.JSON(http.StatusOK, dto.SuccessResponse(details))
}

// GetMine lists the caller's enrollment
// @Summary Get own enrollments
// @Description Returns the authenticated student's current enrollment rows with course and instructor details.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentDetail} "Current enrollment"
// @Router /enrollments/me [get]
func (c *EnrollmentController) GetMine(ctx *gin.Context) {
	accountID, ok := callerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	details, err := c.enrollmentService.GetAccountEnrollments(ctx.Request.Context(), accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(details))
}

// GetClassmates lists other students enrolled in a course
// @Summary Get classmates for a course
// @Description Returns the names of the other students enrolled in the given course.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassmatesResponse} "Classmates"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/classmates [get]
func (c *EnrollmentController) GetClassmates(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	accountID, ok := callerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.enrollmentService.GetClassmates(ctx.Request.Context(), courseID, accountID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(resp))
}
