package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordKnownDigest(t *testing.T) {
	// Base64 of SHA-256("password")
	assert.Equal(t, "XohImNooBHFR0OVvjcYpJ3NgPQ1qq73WKhHvch0VQtg=", HashPassword("password"))
}

func TestHashPasswordDeterministic(t *testing.T) {
	assert.Equal(t, HashPassword("secret123"), HashPassword("secret123"))
	assert.NotEqual(t, HashPassword("secret123"), HashPassword("secret124"))
}

func TestCheckPassword(t *testing.T) {
	digest := HashPassword("secret123")

	assert.True(t, CheckPassword(digest, "secret123"))
	assert.False(t, CheckPassword(digest, "wrong"))
	assert.False(t, CheckPassword(digest, ""))
	assert.False(t, CheckPassword("", "secret123"))
}
