package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store aggregates the entity repositories over a single gorm handle so that
// services can run multi-repository sequences atomically.
type Store struct {
	db *gorm.DB

	Users    *UserRepository
	Rooms    *RoomRepository
	Guests   *GuestRepository
	Bookings *BookingRepository
	Payments *PaymentRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Rooms:    NewRoomRepository(db),
		Guests:   NewGuestRepository(db),
		Bookings: NewBookingRepository(db),
		Payments: NewPaymentRepository(db),
	}
}

// WithTransaction runs fn against a Store bound to one database transaction.
// fn returning an error rolls everything back.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Migrate creates the schema. On PostgreSQL it additionally installs the
// exclusion constraint that makes two overlapping Pending/Confirmed bookings
// for one room impossible to commit, whichever connection loses the race.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&guestModel{},
		&bookingModel{},
		&paymentModel{},
	); err != nil {
		return err
	}

	if s.db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := s.db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	var cnt int64
	if err := s.db.Raw(
		`SELECT COUNT(1) FROM pg_constraint WHERE conname = 'idx_no_double_booking'`,
	).Scan(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	return s.db.Exec(`
ALTER TABLE bookings ADD CONSTRAINT idx_no_double_booking
EXCLUDE USING gist (
    room_id WITH =,
    daterange(check_in_date, check_out_date, '[)') WITH &&
) WHERE (status IN ('Pending', 'Confirmed'))`).Error
}
