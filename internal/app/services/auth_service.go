package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/app/repositories"
	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
	"github.com/dcastillo/campusenroll/internal/pkg/auth"
	"github.com/dcastillo/campusenroll/internal/pkg/validation"
)

// AuthService handles registration, authentication, and token issuance.
// The admin registration code and signing secret arrive through configuration
// at construction, never as literals.
type AuthService struct {
	accountRepo    repositories.IAccountRepository
	enrollmentRepo repositories.IEnrollmentRepository
	jwtService     *auth.JWTService
	adminCode      string
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountRepo repositories.IAccountRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	jwtService *auth.JWTService,
	adminCode string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accountRepo:    accountRepo,
		enrollmentRepo: enrollmentRepo,
		jwtService:     jwtService,
		adminCode:      adminCode,
		logger:         logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}

	if !validation.ValidEmail(email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}

	return nil
}

// ValidatePassword checks if a password meets the minimum requirements
func (s *AuthService) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	if len(password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	return nil
}

// Register creates a new student account. Emails are unique with an exact,
// case-sensitive match against the stored value.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	return s.createAccount(ctx, req.Name, req.Email, req.Password, models.RoleStudent)
}

// RegisterAdmin creates a new admin account. The supplied code must match the
// configured shared registration secret; the code check precedes every store
// access, so no account is created on a bad code.
func (s *AuthService) RegisterAdmin(ctx context.Context, req *dto.RegisterAdminRequest) (*dto.RegisterResponse, error) {
	if req.AdminCode != s.adminCode {
		return nil, apperrors.ErrInvalidAdminCode
	}

	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	return s.createAccount(ctx, req.Name, req.Email, req.Password, models.RoleAdmin)
}

func (s *AuthService) createAccount(ctx context.Context, name, email, password string, role models.RoleType) (*dto.RegisterResponse, error) {
	exists, err := s.accountRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	account := &models.Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: auth.HashPassword(password),
		Role:         role,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		// Unique index raced with the existence check
		if errors.Is(err, repositories.ErrEmailExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("account creation error: %w", err)
	}

	s.logger.Info().
		Str("accountId", account.ID.String()).
		Str("role", string(role)).
		Msg("Account created")

	return &dto.RegisterResponse{
		ID:      account.ID,
		Message: "Registration successful",
	}, nil
}

// Login authenticates credentials and issues a signed session token. The
// failure is identical for an unknown email and a wrong password so the
// response does not leak which emails are registered.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(account)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		Name:      account.Name,
		Email:     account.Email,
		Role:      string(account.Role),
	}, nil
}

// GetProfile retrieves an account's own profile with its enrolled course names
func (s *AuthService) GetProfile(ctx context.Context, accountID uuid.UUID) (*dto.ProfileResponse, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	details, err := s.enrollmentRepo.GetDetailsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}

	courses := make([]string, 0, len(details))
	for _, d := range details {
		courses = append(courses, d.CourseName)
	}

	return &dto.ProfileResponse{
		ID:              account.ID,
		Name:            account.Name,
		Email:           account.Email,
		Role:            string(account.Role),
		EnrolledCourses: courses,
	}, nil
}
