package utils

import "errors"

// Common application errors used across services.
var (
	ErrEmailExists        = errors.New("EMAIL_EXISTS")
	ErrMissingFields      = errors.New("MISSING_FIELDS")
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrInvalidGender      = errors.New("INVALID_GENDER")
	ErrInvalidAge         = errors.New("INVALID_AGE")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
)
