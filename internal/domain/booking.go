package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// Blocks reports whether a booking in this status keeps its room and date
// range occupied for the overlap check.
func (s BookingStatus) Blocks() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID      int64 `json:"id"`
	RoomID  int64 `json:"room_id"`
	GuestID int64 `json:"guest_id"`
	// Stay interval is half-open [CheckInDate, CheckOutDate): the check-out
	// day itself is free for the next guest.
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	// TotalAmount is fixed at creation (price per night x nights) and never
	// recomputed afterwards.
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Room  *Room         `json:"room_details,omitempty"`
	Guest *GuestProfile `json:"guest_details,omitempty"`
}
