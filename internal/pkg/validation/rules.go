// Package validation holds the shared field rules for account data.
package validation

import "regexp"

var (
	// EmailPattern accepts a local part, an @ and a dotted domain
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 6

	// Name length bounds for accounts and instructors
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// ValidEmail reports whether the address matches the accepted email shape.
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// ValidName reports whether a display name is within the accepted bounds.
func ValidName(name string) bool {
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}
