package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives the bcrypt hash stored for a user. Only the hash is
// ever persisted; the plaintext never leaves the request.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
// Signin relies on this returning a bare bool so a mismatch stays
// indistinguishable from an unknown email.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
