package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost of 8 for performance on small VPS nodes
// Cost 8 = ~25ms, Cost 10 = ~100ms per hash
const bcryptCost = 8

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if the provided password matches the hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidPassword enforces the account password policy: at least 6
// characters with an uppercase letter, a lowercase letter and a digit.
func ValidPassword(password string) bool {
	if len(password) < 6 {
		return false
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
	return hasUpper && hasLower && hasDigit
}
