package auth

import (
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 10

// HashPassword produces a salted bcrypt hash. The salt is random per call, so
// hashing the same plaintext twice yields two different strings.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword reports whether password matches hashedPassword. A malformed
// hash counts as a mismatch.
func CheckPassword(hashedPassword string, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
