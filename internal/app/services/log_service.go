package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/repositories"
	"github.com/dcastillo/campusenroll/internal/pkg/helpers"
)

// RequestMeta carries the per-request fields recorded alongside an audit entry.
type RequestMeta struct {
	AccountID string
	IPAddress string
	UserAgent string
}

// LogService persists operational/audit records to the logs table and mirrors
// them to the structured logger. Persistence is best-effort: a store failure is
// logged and swallowed so audit recording never fails the request that
// triggered it.
type LogService struct {
	logRepo repositories.ILogRepository
	logger  zerolog.Logger
}

// NewLogService creates a new LogService
func NewLogService(logRepo repositories.ILogRepository, logger zerolog.Logger) *LogService {
	return &LogService{
		logRepo: logRepo,
		logger:  logger,
	}
}

func (s *LogService) record(ctx context.Context, level, event, message string, meta RequestMeta) {
	entry := &models.AuditLog{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}
	if event != "" {
		entry.Event = &event
	}
	if meta.AccountID != "" {
		entry.AccountID = &meta.AccountID
	}
	if meta.IPAddress != "" {
		entry.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		entry.UserAgent = &meta.UserAgent
	}

	if err := s.logRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("event", event).Msg("Failed to persist log record")
	}
}

// Info records an informational entry
func (s *LogService) Info(ctx context.Context, event, message string, meta RequestMeta) {
	s.logger.Info().Str("event", event).Str("accountId", meta.AccountID).Msg(message)
	s.record(ctx, models.LogLevelInfo, event, message, meta)
}

// Error records a failure entry
func (s *LogService) Error(ctx context.Context, event string, err error, meta RequestMeta) {
	s.logger.Error().Err(err).Str("event", event).Str("accountId", meta.AccountID).Msg("Operation failed")
	s.record(ctx, models.LogLevelError, event, err.Error(), meta)
}

// Audit records a successful state-changing operation
func (s *LogService) Audit(ctx context.Context, event, message string, meta RequestMeta) {
	s.logger.Info().Str("event", event).Str("accountId", meta.AccountID).Msg(message)
	s.record(ctx, models.LogLevelAudit, event, message, meta)
}

// Security records an authentication/authorization-relevant event
func (s *LogService) Security(ctx context.Context, event, message string, meta RequestMeta) {
	s.logger.Warn().Str("event", event).Str("accountId", meta.AccountID).Msg(message)
	s.record(ctx, models.LogLevelSecurity, event, message, meta)
}

// GetRecent retrieves a page of log records, newest first, optionally filtered by level
func (s *LogService) GetRecent(ctx context.Context, level string, page, size int) (*dto.LogListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	entries, total, err := s.logRepo.GetRecent(ctx, level, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving log records: %w", err)
	}
	if entries == nil {
		entries = []*models.AuditLog{}
	}

	return &dto.LogListResponse{
		Logs:       entries,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetDashboardStats aggregates the counts for the logs dashboard
func (s *LogService) GetDashboardStats(ctx context.Context) (*dto.LogDashboardStats, error) {
	stats, err := s.logRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error aggregating log stats: %w", err)
	}
	return stats, nil
}

// ExportCSV writes every log record since the given time to w as CSV.
func (s *LogService) ExportCSV(ctx context.Context, w io.Writer, since time.Time) error {
	entries, err := s.logRepo.GetSince(ctx, since)
	if err != nil {
		return fmt.Errorf("error retrieving log records: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{"id", "timestamp", "level", "message", "event", "account_id", "ip_address", "user_agent", "properties"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	for _, entry := range entries {
		row := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.Timestamp.Format(time.RFC3339),
			entry.Level,
			entry.Message,
			deref(entry.Event),
			deref(entry.AccountID),
			deref(entry.IPAddress),
			deref(entry.UserAgent),
			deref(entry.Properties),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
