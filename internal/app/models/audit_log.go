package models

import "time"

// AuditLog is a persisted operational/audit log record based on the 'logs' table.
type AuditLog struct {
	ID        int64     `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Level     string    `json:"level" db:"level" example:"Info"`
	Message   string    `json:"message" db:"message"`
	Event     *string   `json:"event,omitempty" db:"event" example:"LOGIN"`
	AccountID *string   `json:"accountId,omitempty" db:"account_id"`
	IPAddress *string   `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent *string   `json:"userAgent,omitempty" db:"user_agent"`
	Properties *string  `json:"properties,omitempty" db:"properties"`
}

// Log levels stored in the logs table.
const (
	LogLevelInfo     = "Info"
	LogLevelWarning  = "Warning"
	LogLevelError    = "Error"
	LogLevelAudit    = "Audit"
	LogLevelSecurity = "Security"
)
