package repository

import (
	"context"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	RoomID       int64     `gorm:"column:room_id;index"`
	GuestID      int64     `gorm:"column:guest_id;index"`
	CheckInDate  time.Time `gorm:"column:check_in_date;type:date"`
	CheckOutDate time.Time `gorm:"column:check_out_date;type:date"`
	TotalAmount  float64   `gorm:"column:total_amount"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`

	Room  *roomModel  `gorm:"foreignKey:RoomID;references:ID"`
	Guest *guestModel `gorm:"foreignKey:GuestID;references:ID"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:           m.ID,
		RoomID:       m.RoomID,
		GuestID:      m.GuestID,
		CheckInDate:  m.CheckInDate,
		CheckOutDate: m.CheckOutDate,
		TotalAmount:  m.TotalAmount,
		Status:       domain.BookingStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Room != nil {
		b.Room = toDomainRoom(*m.Room)
	}
	if m.Guest != nil {
		b.Guest = toDomainGuest(*m.Guest)
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:           b.ID,
		RoomID:       b.RoomID,
		GuestID:      b.GuestID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		TotalAmount:  b.TotalAmount,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Guest").
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// CountOverlapping counts Pending/Confirmed bookings on the room whose
// half-open [check_in, check_out) range intersects the given one. Back-to-back
// stays (existing check-out == new check-in) do not count.
func (r *BookingRepository) CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&cnt).Error
	if err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Guest").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

// ListByUser returns the bookings whose guest profile belongs to userID.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Joins("JOIN guest_profiles ON guest_profiles.id = bookings.guest_id").
		Where("guest_profiles.user_id = ?", userID).
		Preload("Room").
		Preload("Guest").
		Order("bookings.id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

// OwnerUserID resolves booking -> guest profile -> owning user.
func (r *BookingRepository) OwnerUserID(ctx context.Context, bookingID int64) (int64, error) {
	var ownerID int64
	tx := r.db.WithContext(ctx).Raw(`
SELECT guest_profiles.user_id
FROM bookings
JOIN guest_profiles ON guest_profiles.id = bookings.guest_id
WHERE bookings.id = ?`, bookingID).Scan(&ownerID)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return ownerID, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
