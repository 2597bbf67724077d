package domain

import "time"

// ProfileUnknown is the sentinel stored for phone/address when a profile is
// created lazily on first booking and the caller never supplied them.
const ProfileUnknown = "unknown"

// GuestProfile holds booking contact details. Exactly one profile exists per
// user; it is created on registration or lazily on first booking.
type GuestProfile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PhoneNo   string    `json:"phoneno"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
