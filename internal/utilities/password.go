package utilities

import (
	"math/rand"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password with bcrypt default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether a plain password matches a bcrypt hash.
func VerifyPassword(password string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// ValidatePasswordStrength checks the staff password policy:
// at least 8 characters with one uppercase, one lowercase, and one digit.
// It returns a human-readable reason when the password is rejected.
func ValidatePasswordStrength(password string) (string, bool) {
	if len(password) < 8 {
		return "Password must be at least 8 characters", false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return "Password must contain at least one uppercase letter", false
	}
	if !hasLower {
		return "Password must contain at least one lowercase letter", false
	}
	if !hasDigit {
		return "Password must contain at least one digit", false
	}
	return "", true
}

const tempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTempPassword builds a random temporary password of length n
// for the forgot-password flow.
func GenerateTempPassword(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tempPasswordAlphabet[rand.Intn(len(tempPasswordAlphabet))]
	}
	return string(b)
}
