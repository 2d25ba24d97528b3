package auth

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashPassword derives the stored digest for a password.
//
// The digest is an unsalted single-pass SHA-256, base64-encoded, kept for
// compatibility with credentials already in the store. New deployments should
// migrate to a salted, slow hash (bcrypt/argon2) together with a re-hash on login.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// CheckPassword reports whether password hashes to the stored digest.
func CheckPassword(storedDigest, password string) bool {
	return HashPassword(password) == storedDigest
}
