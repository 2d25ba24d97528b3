package dto

import (
	"time"

	"github.com/dcastillo/campusenroll/internal/app/models"
)

// LogListResponse is a page of log records with pagination metadata
type LogListResponse struct {
	Logs       []*models.AuditLog `json:"logs"`
	Pagination PaginationInfo     `json:"pagination"`
}

// LevelCount is the number of log records at one level
type LevelCount struct {
	Level string `json:"level"`
	Count int64  `json:"count"`
}

// HourlyCount is the number of log records (and errors) in one hour bucket
type HourlyCount struct {
	Hour   time.Time `json:"hour"`
	Count  int64     `json:"count"`
	Errors int64     `json:"errors"`
}

// LogDashboardStats aggregates log counts for the admin logs dashboard
type LogDashboardStats struct {
	TotalLogs   int64        `json:"totalLogs"`
	TodayLogs   int64        `json:"todayLogs"`
	TotalErrors int64        `json:"totalErrors"`
	TodayErrors int64        `json:"todayErrors"`
	LogsByLevel []LevelCount `json:"logsByLevel"`
	HourlyLogs  []HourlyCount `json:"hourlyLogs"`
	LastUpdated time.Time    `json:"lastUpdated"`
}
