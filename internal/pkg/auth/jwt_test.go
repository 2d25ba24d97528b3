package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/campusenroll/internal/app/models"
)

func testJWTService(expiry time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:     "unit-test-secret",
		TokenExpiry:   expiry,
		TokenIssuer:   "campusenroll",
		TokenAudience: "campusenroll-api",
	})
}

func testAccount() *models.Account {
	return &models.Account{
		ID:    uuid.New(),
		Name:  "Ana García",
		Email: "ana@example.com",
		Role:  models.RoleStudent,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService(2 * time.Hour)
	account := testAccount()

	token, expiresIn, err := svc.GenerateToken(account)
	require.NoError(t, err)
	assert.Equal(t, int64(7200), expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID.String(), claims.AccountID)
	assert.Equal(t, account.Email, claims.Email)
	assert.Equal(t, string(models.RoleStudent), claims.Role)
	assert.Equal(t, account.ID.String(), claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := testJWTService(-time.Minute)

	token, _, err := svc.GenerateToken(testAccount())
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenSignedWithOtherSecret(t *testing.T) {
	issuer := NewJWTService(JWTConfig{
		SecretKey:     "other-secret",
		TokenExpiry:   time.Hour,
		TokenIssuer:   "campusenroll",
		TokenAudience: "campusenroll-api",
	})
	verifier := testJWTService(time.Hour)

	token, _, err := issuer.GenerateToken(testAccount())
	require.NoError(t, err)

	_, err = verifier.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	for _, token := range []string{"", "   ", "not.a.jwt", "abc"} {
		_, err := svc.ValidateAndExtractClaims(token)
		assert.Error(t, err, "token=%q", token)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic dXNlcg==")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
