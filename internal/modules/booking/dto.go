package booking

import "hotelbooking/internal/domain"

type CreateBookingRequest struct {
	RoomID       int64  `json:"room_id" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
}

// BookingResponse is the read shape: writable input never includes status or
// total_amount, but reads embed them plus the related room/guest records.
type BookingResponse struct {
	ID           int64                `json:"id"`
	RoomID       int64                `json:"room_id"`
	GuestID      int64                `json:"guest_id"`
	CheckInDate  string               `json:"check_in_date"`
	CheckOutDate string               `json:"check_out_date"`
	TotalAmount  float64              `json:"total_amount"`
	Status       string               `json:"status"`
	RoomDetails  *domain.Room         `json:"room_details,omitempty"`
	GuestDetails *domain.GuestProfile `json:"guest_details,omitempty"`
}

func NewBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		RoomID:       b.RoomID,
		GuestID:      b.GuestID,
		CheckInDate:  b.CheckInDate.Format(DateLayout),
		CheckOutDate: b.CheckOutDate.Format(DateLayout),
		TotalAmount:  b.TotalAmount,
		Status:       string(b.Status),
		RoomDetails:  b.Room,
		GuestDetails: b.Guest,
	}
}

func NewBookingResponses(bs []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for i := range bs {
		out = append(out, NewBookingResponse(&bs[i]))
	}
	return out
}
