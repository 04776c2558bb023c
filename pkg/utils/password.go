package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt hash layout: $2a$<cost>$<22-char salt><31-char digest>.
const bcryptSaltPrefixLen = 29

// HashPassword hashes a plaintext password with a per-user random salt and
// returns both the full digest and the salt portion, which is persisted
// alongside the user for parity with the stored schema.
func HashPassword(password string) (hash string, salt string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	hash = string(bytes)
	if len(hash) < bcryptSaltPrefixLen {
		return "", "", errors.New("unexpected bcrypt hash length")
	}

	return hash, hash[:bcryptSaltPrefixLen], nil
}

// CheckPassword reports whether password matches hashedPassword. The
// comparison is constant-time inside bcrypt.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
