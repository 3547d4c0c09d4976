package useradmin

import (
	"database/sql"
	"errors"
)

// ErrNoEmptyString is returned when a value that must not be empty is empty
var ErrNoEmptyString = errors.New("value should not be an empty string")

// ErrMismatchedHashAndPassword is the error for failed password verification
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password")

// ErrAccountNotFound is the error we return for non found accounts
var ErrAccountNotFound = errors.New("account not found")

// ErrSessionUnavailable means the request carries no usable session
var ErrSessionUnavailable = errors.New("session unavailable")

// IsRecordNotFound will check for missing-record errors from the store
func IsRecordNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, sql.ErrNoRows)
}
