package booking

import "errors"

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("booking not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrPastDate         = errors.New("cannot book dates in the past")
	ErrRoomUnavailable  = errors.New("room is not marked as available")
	ErrDateConflict     = errors.New("room is already booked for these dates")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)
