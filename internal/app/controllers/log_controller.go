package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/services"
	"github.com/dcastillo/campusenroll/internal/middleware"
	"github.com/dcastillo/campusenroll/internal/pkg/helpers"
)

// defaultExportWindow bounds the CSV export when no "since" is given.
const defaultExportWindow = 30 * 24 * time.Hour

// LogController exposes the persisted audit log to admins
type LogController struct {
	logService *services.LogService
	logger     zerolog.Logger
}

// NewLogController creates a new LogController
func NewLogController(logService *services.LogService, logger zerolog.Logger) *LogController {
	return &LogController{
		logService: logService,
		logger:     logger,
	}
}

// GetRecent returns a page of recent log records
// @Summary List recent logs
// @Description Returns recent audit log records, newest first, optionally filtered by level.
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param level query string false "Filter by level (Info, Warning, Error, Audit, Security)"
// @Success 200 {object} dto.APIResponse{data=dto.LogListResponse} "Logs"
// @Router /admin/logs [get]
func (c *LogController) GetRecent(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	level := ctx.Query("level")

	resp, err := c.logService.GetRecent(ctx.Request.Context(), level, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(resp))
}

// GetDashboardStats returns log aggregates for the admin logs dashboard
// @Summary Log dashboard statistics
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.LogDashboardStats} "Stats"
// @Router /admin/logs/dashboard [get]
func (c *LogController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.logService.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse(stats))
}

// ExportCSV streams log records as a CSV attachment
// @Summary Export logs as CSV
// @Description Streams audit log records since the given RFC 3339 timestamp (default: last 30 days) as a CSV download.
// @Tags logs
// @Produce text/csv
// @Security BearerAuth
// @Param since query string false "RFC 3339 lower bound, e.g. 2026-08-01T00:00:00Z"
// @Success 200 {string} string "CSV content"
// @Router /admin/logs/export [get]
func (c *LogController) ExportCSV(ctx *gin.Context) {
	since := time.Now().Add(-defaultExportWindow)
	if raw := ctx.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid since timestamp")
			errorDetail = errorDetail.WithDetails("Expected RFC 3339, e.g. 2026-08-01T00:00:00Z")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		since = parsed
	}

	filename := fmt.Sprintf("logs-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := c.logService.ExportCSV(ctx.Request.Context(), ctx.Writer, since); err != nil {
		c.logger.Error().Err(err).Msg("Log export failed")
		// Headers already sent; nothing sensible left to return
		return
	}
}
