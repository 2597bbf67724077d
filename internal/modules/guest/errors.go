package guest

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("guest profile not found")
	ErrAlreadyExists = errors.New("guest profile already exists")
	ErrInvalidPhone  = errors.New("invalid phone number format, must be 9-15 digits")
)
