package dto

import "github.com/google/uuid"

// RegisterRequest is the payload for student registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Ana García"`
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

// RegisterAdminRequest is the payload for admin registration. AdminCode must
// match the configured shared registration secret.
type RegisterAdminRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	AdminCode string `json:"adminCode" binding:"required"`
}

// RegisterResponse carries the id of the newly created account
type RegisterResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message" example:"Registration successful"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token plus the account's public identity
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType" example:"Bearer"`
	ExpiresIn int64  `json:"expiresIn" example:"7200"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role" example:"STUDENT"`
}

// ProfileResponse is the authenticated account's own view of itself
type ProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	EnrolledCourses []string  `json:"enrolledCourses"`
}
