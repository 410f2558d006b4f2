package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost stays at the library default; registration is rare enough that
// a higher cost buys little here.
const bcryptCost = bcrypt.DefaultCost

// HashPassword will generate a salted password hash. The salt is embedded in
// the digest, so hashing the same plaintext twice yields different digests.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password against
// the stored digest. A corrupted digest reports as a mismatch, never a panic.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
