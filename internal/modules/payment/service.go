package payment

import (
	"context"
	"errors"
	"math"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	store *repository.Store
}

func NewService(store *repository.Store) *Service {
	return &Service{store: store}
}

// RecordPayment writes the payment record and confirms the booking in one
// transaction: a crash can never leave a Confirmed booking without its
// payment, or a Success payment against a non-Confirmed booking.
func (s *Service) RecordPayment(ctx context.Context, p domain.Principal, bookingID int64, amount float64, method string) (*domain.Payment, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}

	var pmt *domain.Payment
	err := s.store.WithTransaction(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		owner, err := tx.Bookings.OwnerUserID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !p.CanManage(owner) {
			return ErrForbidden
		}

		if b.Status == domain.BookingCancelled {
			return ErrBookingCancelled
		}
		if math.Round(amount*100)/100 != b.TotalAmount {
			return ErrAmountMismatch
		}

		pmt = &domain.Payment{
			BookingID:   b.ID,
			Amount:      b.TotalAmount,
			PaymentDate: booking.NormalizeDate(time.Now()),
			Method:      method,
			Status:      domain.PaymentSuccess,
		}
		if err := tx.Payments.Create(ctx, pmt); err != nil {
			return err
		}

		if err := tx.Bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed); err != nil {
			return err
		}
		b.Status = domain.BookingConfirmed
		pmt.Booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pmt, nil
}

func (s *Service) GetPayment(ctx context.Context, p domain.Principal, paymentID int64) (*domain.Payment, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}

	pmt, err := s.store.Payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	owner, err := s.store.Bookings.OwnerUserID(ctx, pmt.BookingID)
	if err != nil {
		return nil, err
	}
	if !p.CanManage(owner) {
		return nil, ErrForbidden
	}
	return pmt, nil
}

// ListPayments returns every payment for staff and the principal's own
// payments otherwise.
func (s *Service) ListPayments(ctx context.Context, p domain.Principal) ([]domain.Payment, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}
	if p.IsStaff() {
		return s.store.Payments.List(ctx)
	}
	return s.store.Payments.ListByUser(ctx, p.UserID)
}

func (s *Service) ListMine(ctx context.Context, p domain.Principal) ([]domain.Payment, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}
	return s.store.Payments.ListByUser(ctx, p.UserID)
}
