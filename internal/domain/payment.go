package domain

import "time"

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "Success"
	PaymentFailed  PaymentStatus = "Failed"
)

// Payment is a status record against a booking, written once per successful
// attempt and immutable afterwards. Amount always equals the booking total.
type Payment struct {
	ID          int64         `json:"id"`
	BookingID   int64         `json:"booking_id"`
	Amount      float64       `json:"amount"`
	PaymentDate time.Time     `json:"payment_date"`
	Method      string        `json:"payment_method"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`

	Booking *Booking `json:"booking_details,omitempty"`
}
