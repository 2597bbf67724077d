package payment

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("payment not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAmountMismatch   = errors.New("payment amount does not match booking total")
	ErrBookingCancelled = errors.New("booking is cancelled")
)
