// Package models contains the database-facing entity types.
package models

// RoleType represents an account role
type RoleType string

const (
	// RoleStudent is the default role assigned at registration
	RoleStudent RoleType = "STUDENT"
	// RoleAdmin is assigned through admin registration with the shared code
	RoleAdmin RoleType = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}
