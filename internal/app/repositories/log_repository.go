package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
)

// ILogRepository defines the audit log store operations
type ILogRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	GetRecent(ctx context.Context, level string, offset uint64, limit int) ([]*models.AuditLog, int64, error)
	GetDashboardStats(ctx context.Context) (*dto.LogDashboardStats, error)
	GetSince(ctx context.Context, since time.Time) ([]*models.AuditLog, error)
}

// LogRepository handles database operations for audit logs
type LogRepository struct {
	db *pgxpool.Pool
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *pgxpool.Pool) *LogRepository {
	return &LogRepository{
		db: db,
	}
}

// Insert stores a log record
func (r *LogRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO logs (timestamp, level, message, event, account_id, ip_address, user_agent, properties)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	err := r.db.QueryRow(ctx, query,
		ts, entry.Level, entry.Message, entry.Event,
		entry.AccountID, entry.IPAddress, entry.UserAgent, entry.Properties,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("error inserting log record: %w", err)
	}

	return nil
}

// GetRecent retrieves a page of log records, newest first, optionally filtered
// by level. The second return value is the total matching count.
func (r *LogRepository) GetRecent(ctx context.Context, level string, offset uint64, limit int) ([]*models.AuditLog, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM logs WHERE ($1 = '' OR level = $1)`
	if err := r.db.QueryRow(ctx, countQuery, level).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting log records: %w", err)
	}

	query := `
		SELECT id, timestamp, level, message, event, account_id, ip_address, user_agent, properties
		FROM logs
		WHERE ($1 = '' OR level = $1)
		ORDER BY timestamp DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, level, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Level,
			&entry.Message,
			&entry.Event,
			&entry.AccountID,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.Properties,
		); err != nil {
			return nil, 0, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetDashboardStats aggregates totals, today's counts, per-level counts, and
// hourly buckets over the last 24 hours.
func (r *LogRepository) GetDashboardStats(ctx context.Context) (*dto.LogDashboardStats, error) {
	stats := &dto.LogDashboardStats{LastUpdated: time.Now()}

	summaryQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE timestamp >= date_trunc('day', now())),
		       COUNT(*) FILTER (WHERE level IN ('Error', 'Fatal')),
		       COUNT(*) FILTER (WHERE level IN ('Error', 'Fatal') AND timestamp >= date_trunc('day', now()))
		FROM logs
	`
	err := r.db.QueryRow(ctx, summaryQuery).Scan(
		&stats.TotalLogs, &stats.TodayLogs, &stats.TotalErrors, &stats.TodayErrors)
	if err != nil {
		return nil, fmt.Errorf("error aggregating log totals: %w", err)
	}

	levelRows, err := r.db.Query(ctx,
		`SELECT level, COUNT(*) FROM logs GROUP BY level ORDER BY level`)
	if err != nil {
		return nil, err
	}
	defer levelRows.Close()

	for levelRows.Next() {
		var lc dto.LevelCount
		if err := levelRows.Scan(&lc.Level, &lc.Count); err != nil {
			return nil, err
		}
		stats.LogsByLevel = append(stats.LogsByLevel, lc)
	}
	if err := levelRows.Err(); err != nil {
		return nil, err
	}

	hourlyQuery := `
		SELECT date_trunc('hour', timestamp) AS bucket,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE level IN ('Error', 'Fatal'))
		FROM logs
		WHERE timestamp >= now() - interval '24 hours'
		GROUP BY bucket
		ORDER BY bucket
	`
	hourRows, err := r.db.Query(ctx, hourlyQuery)
	if err != nil {
		return nil, err
	}
	defer hourRows.Close()

	for hourRows.Next() {
		var hc dto.HourlyCount
		if err := hourRows.Scan(&hc.Hour, &hc.Count, &hc.Errors); err != nil {
			return nil, err
		}
		stats.HourlyLogs = append(stats.HourlyLogs, hc)
	}
	if err := hourRows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetSince retrieves every log record at or after the given time, oldest first.
// Used by the CSV export.
func (r *LogRepository) GetSince(ctx context.Context, since time.Time) ([]*models.AuditLog, error) {
	query := `
		SELECT id, timestamp, level, message, event, account_id, ip_address, user_agent, properties
		FROM logs
		WHERE timestamp >= $1
		ORDER BY timestamp
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Level,
			&entry.Message,
			&entry.Event,
			&entry.AccountID,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.Properties,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
