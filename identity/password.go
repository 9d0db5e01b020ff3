package identity

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces the bcrypt hash an account stores in place of its
// password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(password), bcrypt.DefaultCost,
	)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword tells whether password matches an account's stored hash.
func CheckPassword(passwordHash, password string) bool {
	return bcrypt.CompareHashAndPassword(
		[]byte(passwordHash), []byte(password),
	) == nil
}
