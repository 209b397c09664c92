package auth

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

var DefaultHasher PasswordHasher = BcryptHasher{}

// Bcrypt password hasher
// Passwords are pre-hashed with sha256 to dodge bcrypt's 72 byte input limit
type BcryptHasher struct{}

func (h BcryptHasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	return string(hash), err
}

func (h BcryptHasher) Compare(hashedPassword string, password string) error {
	sum := sha256.Sum256([]byte(password))
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), sum[:])
}
