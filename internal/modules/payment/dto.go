package payment

import (
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/booking"
)

type RecordPaymentRequest struct {
	BookingID int64   `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"payment_method" binding:"required"`
}

type PaymentResponse struct {
	ID             int64                    `json:"id"`
	BookingID      int64                    `json:"booking_id"`
	Amount         float64                  `json:"amount"`
	PaymentDate    string                   `json:"payment_date"`
	Method         string                   `json:"payment_method"`
	Status         string                   `json:"status"`
	BookingDetails *booking.BookingResponse `json:"booking_details,omitempty"`
}

func newPaymentResponse(p *domain.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(booking.DateLayout),
		Method:      p.Method,
		Status:      string(p.Status),
	}
	if p.Booking != nil {
		br := booking.NewBookingResponse(p.Booking)
		resp.BookingDetails = &br
	}
	return resp
}

func newPaymentResponses(ps []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for i := range ps {
		out = append(out, newPaymentResponse(&ps[i]))
	}
	return out
}
