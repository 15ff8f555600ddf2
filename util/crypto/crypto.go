// Package crypto hashes and verifies account passwords with bcrypt.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor used for all stored password hashes.
const hashCost = bcrypt.DefaultCost

// HashPasswordAsBcrypt generates a bcrypt hash of the given password.
func HashPasswordAsBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(hash), err
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
