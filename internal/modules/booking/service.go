package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	store *repository.Store
}

func NewService(store *repository.Store) *Service {
	return &Service{store: store}
}

// CreateBooking admits a stay request for the principal. The availability
// check and the insert run in one transaction so two concurrent requests for
// an overlapping range cannot both commit; the loser gets ErrDateConflict.
func (s *Service) CreateBooking(ctx context.Context, p domain.Principal, roomID int64, checkIn, checkOut time.Time) (*domain.Booking, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}

	checkIn = NormalizeDate(checkIn)
	checkOut = NormalizeDate(checkOut)

	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}
	if checkIn.Before(NormalizeDate(time.Now())) {
		return nil, ErrPastDate
	}

	guest, err := s.guestProfileFor(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	var b *domain.Booking
	err = s.store.WithTransaction(ctx, func(tx *repository.Store) error {
		room, err := tx.Rooms.GetByID(ctx, roomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if !room.IsAvailable {
			return ErrRoomUnavailable
		}

		overlapping, err := tx.Bookings.CountOverlapping(ctx, roomID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrDateConflict
		}

		b = &domain.Booking{
			RoomID:       room.ID,
			GuestID:      guest.ID,
			CheckInDate:  checkIn,
			CheckOutDate: checkOut,
			TotalAmount:  ComputeTotal(room.PricePerNight, Nights(checkIn, checkOut)),
			Status:       domain.BookingPending,
		}
		if err := tx.Bookings.Create(ctx, b); err != nil {
			return err
		}
		b.Room = room
		return nil
	})
	if err != nil {
		if isRaceLoss(err) {
			return nil, ErrDateConflict
		}
		return nil, err
	}

	b.Guest = guest
	return b, nil
}

// CancelBooking is permitted to staff and to the booking's owner. Cancelled
// is terminal: repeating the call fails with ErrAlreadyCancelled and changes
// nothing.
func (s *Service) CancelBooking(ctx context.Context, p domain.Principal, bookingID int64) (*domain.Booking, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}

	var b *domain.Booking
	err := s.store.WithTransaction(ctx, func(tx *repository.Store) error {
		var err error
		b, err = tx.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if b.Guest == nil || !p.CanManage(b.Guest.UserID) {
			return ErrForbidden
		}
		if b.Status == domain.BookingCancelled {
			return ErrAlreadyCancelled
		}
		if err := tx.Bookings.UpdateStatus(ctx, bookingID, domain.BookingCancelled); err != nil {
			return err
		}
		b.Status = domain.BookingCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, p domain.Principal, bookingID int64) (*domain.Booking, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}

	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Guest == nil || !p.CanManage(b.Guest.UserID) {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListBookings returns all bookings for staff and the principal's own
// bookings otherwise.
func (s *Service) ListBookings(ctx context.Context, p domain.Principal) ([]domain.Booking, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}
	if p.IsStaff() {
		return s.store.Bookings.List(ctx)
	}
	return s.store.Bookings.ListByUser(ctx, p.UserID)
}

// ListMine always scopes to the principal, staff included.
func (s *Service) ListMine(ctx context.Context, p domain.Principal) ([]domain.Booking, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}
	return s.store.Bookings.ListByUser(ctx, p.UserID)
}

// guestProfileFor resolves the principal's profile, creating one with
// sentinel contact details on first booking.
func (s *Service) guestProfileFor(ctx context.Context, userID int64) (*domain.GuestProfile, error) {
	guest, err := s.store.Guests.GetByUserID(ctx, userID)
	if err == nil {
		return guest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	guest = &domain.GuestProfile{
		UserID:  userID,
		PhoneNo: domain.ProfileUnknown,
		Address: domain.ProfileUnknown,
	}
	if err := s.store.Guests.Create(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// isRaceLoss detects a create that lost to a concurrent overlapping booking:
// the Postgres exclusion constraint, a serialization abort, or sqlite failing
// to take the write lock. Those all surface as DateConflict, not 500.
func isRaceLoss(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if (pgErr.Code == "23P01" || pgErr.Code == "23505") &&
			pgErr.ConstraintName == "idx_no_double_booking" {
			return true
		}
		if pgErr.Code == "40001" {
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED")
}
