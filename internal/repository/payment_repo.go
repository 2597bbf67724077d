package repository

import (
	"context"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	BookingID   int64     `gorm:"column:booking_id;index"`
	Amount      float64   `gorm:"column:amount"`
	PaymentDate time.Time `gorm:"column:payment_date;type:date"`
	Method      string    `gorm:"column:payment_method"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`

	Booking *bookingModel `gorm:"foreignKey:BookingID;references:ID"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	p := &domain.Payment{
		ID:          m.ID,
		BookingID:   m.BookingID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      m.Method,
		Status:      domain.PaymentStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
	if m.Booking != nil {
		p.Booking = toDomainBooking(*m.Booking)
	}
	return p
}

func toPaymentModel(p *domain.Payment) paymentModel {
	return paymentModel{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Room").
		Preload("Booking.Guest").
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	var models []paymentModel
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(models), nil
}

// ListByUser scopes payments through payment -> booking -> guest profile ->
// owning user.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	var models []paymentModel
	err := r.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Joins("JOIN guest_profiles ON guest_profiles.id = bookings.guest_id").
		Where("guest_profiles.user_id = ?", userID).
		Preload("Booking").
		Order("payments.id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(models), nil
}

// CountSuccessForBooking reports how many Success payments exist for a booking.
func (r *PaymentRepository) CountSuccessForBooking(ctx context.Context, bookingID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("booking_id = ? AND status = ?", bookingID, string(domain.PaymentSuccess)).
		Count(&cnt).Error
	return cnt, err
}

func toDomainPayments(models []paymentModel) []domain.Payment {
	out := make([]domain.Payment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPayment(m))
	}
	return out
}
