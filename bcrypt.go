package useradmin

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// NewSalt generates a fresh random salt for confirmation-key derivation.
// bcrypt salts its own hashes; this value only feeds ConfirmationKey.
func NewSalt() string {
	return uuid.NewString()
}

// ConfirmationKey derives the email-ownership token for an account from its
// stored password hash and salt. The token is deterministic, so no separate
// token storage is needed, and it cannot be produced without the stored hash.
func ConfirmationKey(passwordHash, salt string) string {
	sum := sha256.Sum256([]byte(passwordHash + salt))
	return hex.EncodeToString(sum[:])
}
