package models

import (
	"time"

	"github.com/google/uuid"
)

// Account defines a registered identity based on the 'accounts' table.
// Role is immutable after creation except via explicit admin action.
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" example:"Ana García"`
	Email        string    `json:"email" db:"email" example:"ana@example.com"`
	PasswordHash string    `json:"-" db:"password_hash"` // excluded from JSON
	Role         RoleType  `json:"role" db:"role" example:"STUDENT"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
