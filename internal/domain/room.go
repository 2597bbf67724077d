package domain

import "time"

type Room struct {
	ID            int64   `json:"id"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	// IsAvailable is an administrative override, independent of booking
	// state: a room with IsAvailable=false rejects new bookings even when
	// nothing overlaps.
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
