package repository

import (
	"context"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

type guestModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex"`
	PhoneNo   string    `gorm:"column:phoneno"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (guestModel) TableName() string { return "guest_profiles" }

func toDomainGuest(m guestModel) *domain.GuestProfile {
	return &domain.GuestProfile{
		ID:        m.ID,
		UserID:    m.UserID,
		PhoneNo:   m.PhoneNo,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toGuestModel(g *domain.GuestProfile) guestModel {
	return guestModel{
		ID:        g.ID,
		UserID:    g.UserID,
		PhoneNo:   g.PhoneNo,
		Address:   g.Address,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.GuestProfile) error {
	m := toGuestModel(g)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*g = *toDomainGuest(m)
	return nil
}

func (r *GuestRepository) GetByID(ctx context.Context, id int64) (*domain.GuestProfile, error) {
	var m guestModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainGuest(m), nil
}

func (r *GuestRepository) GetByUserID(ctx context.Context, userID int64) (*domain.GuestProfile, error) {
	var m guestModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainGuest(m), nil
}

func (r *GuestRepository) List(ctx context.Context) ([]domain.GuestProfile, error) {
	var models []guestModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.GuestProfile, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainGuest(m))
	}
	return out, nil
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.GuestProfile) error {
	tx := r.db.WithContext(ctx).Model(&guestModel{}).
		Where("id = ?", g.ID).
		Updates(map[string]any{"phoneno": g.PhoneNo, "address": g.Address})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&guestModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
