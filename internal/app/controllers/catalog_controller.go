package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/services"
	"github.com/dcastillo/campusenroll/internal/middleware"
)

// CatalogController serves the course and instructor catalog to authenticated
// accounts.
type CatalogController struct {
	catalogService *services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListCourses lists the course catalog
// @Summary List all courses
// @Description Returns every course with its credits and owning instructor.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.catalogService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(courses))
}

// ListInstructors lists the instructor catalog
// @Summary List all instructors
// @Description Returns every instructor with the names of the courses they teach.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorResponse} "Instructors"
// @Router /instructors [get]
func (c *CatalogController) ListInstructors(ctx *gin.Context) {
	instructors, err := c.catalogService.ListInstructors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(instructors))
}
