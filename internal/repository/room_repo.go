package repository

import (
	"context"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	RoomNumber    string    `gorm:"column:room_number"`
	RoomType      string    `gorm:"column:room_type"`
	PricePerNight float64   `gorm:"column:price_per_night"`
	Capacity      int       `gorm:"column:capacity"`
	IsAvailable   bool      `gorm:"column:is_available"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:            m.ID,
		RoomNumber:    m.RoomNumber,
		RoomType:      m.RoomType,
		PricePerNight: m.PricePerNight,
		Capacity:      m.Capacity,
		IsAvailable:   m.IsAvailable,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	return roomModel{
		ID:            r.ID,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight,
		Capacity:      r.Capacity,
		IsAvailable:   r.IsAvailable,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var models []roomModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Room, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// Update replaces the writable fields of an existing room.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	updates := map[string]any{
		"room_number":     room.RoomNumber,
		"room_type":       room.RoomType,
		"price_per_night": room.PricePerNight,
		"capacity":        room.Capacity,
		"is_available":    room.IsAvailable,
	}
	return r.updateFields(ctx, room.ID, updates)
}

// UpdateFields applies a partial update; keys are column names from the
// explicit allow-list assembled by the room service.
func (r *RoomRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.updateFields(ctx, id, fields)
}

func (r *RoomRepository) updateFields(ctx context.Context, id int64, fields map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	return r.updateFields(ctx, id, map[string]any{"is_available": available})
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
