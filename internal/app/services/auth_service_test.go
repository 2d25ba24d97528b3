package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/app/models/dto"
	"github.com/dcastillo/campusenroll/internal/pkg/apperrors"
	"github.com/dcastillo/campusenroll/internal/pkg/auth"
)

const testAdminCode = "letmein-admin"

func newAuthFixture() (*AuthService, *fakeAccountRepo) {
	accounts := newFakeAccountRepo()
	catalog := newFakeCatalogRepo()
	enrollments := newFakeEnrollmentRepo(catalog)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:     "test-secret",
		TokenExpiry:   2 * time.Hour,
		TokenIssuer:   "campusenroll",
		TokenAudience: "campusenroll-api",
	})

	svc := NewAuthService(accounts, enrollments, jwtService, testAdminCode, zerolog.Nop())
	return svc, accounts
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEqual(t, "", reg.ID.String())

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(7200), resp.ExpiresIn)
	assert.Equal(t, "Ana García", resp.Name)
	assert.Equal(t, string(models.RoleStudent), resp.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	_, wrongPassErr := svc.Login(ctx, &dto.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	req := &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterValidatesEmailAndPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ana", Email: "not-an-email", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterAdminRequiresCode(t *testing.T) {
	svc, accounts := newAuthFixture()
	ctx := context.Background()

	_, err := svc.RegisterAdmin(ctx, &dto.RegisterAdminRequest{
		Name:      "Root",
		Email:     "root@example.com",
		Password:  "secret123",
		AdminCode: "wrong-code",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAdminCode)

	// No account may exist after a rejected admin registration.
	exists, err := accounts.EmailExists(ctx, "root@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	reg, err := svc.RegisterAdmin(ctx, &dto.RegisterAdminRequest{
		Name:      "Root",
		Email:     "root@example.com",
		Password:  "secret123",
		AdminCode: testAdminCode,
	})
	require.NoError(t, err)

	account, err := accounts.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, account.Role)
}

func TestPasswordsAreStoredAsDigests(t *testing.T) {
	svc, accounts := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	account, err := accounts.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", account.PasswordHash)
	assert.True(t, auth.CheckPassword(account.PasswordHash, "secret123"))
}
