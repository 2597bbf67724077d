package room

import (
	"context"
	"errors"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	store *repository.Store
}

func NewService(store *repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	room := &domain.Room{
		RoomNumber:    req.RoomNumber,
		RoomType:      req.RoomType,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		IsAvailable:   available,
	}
	if err := s.store.Rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.store.Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.store.Rooms.List(ctx)
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.store.Rooms.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	room.RoomNumber = req.RoomNumber
	room.RoomType = req.RoomType
	room.PricePerNight = req.PricePerNight
	room.Capacity = req.Capacity
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := s.store.Rooms.Update(ctx, room); err != nil {
		return nil, notFound(err)
	}
	return room, nil
}

func (s *Service) PatchRoom(ctx context.Context, id int64, req PatchRoomRequest) (*domain.Room, error) {
	fields := map[string]any{}
	if req.RoomNumber != nil {
		fields["room_number"] = *req.RoomNumber
	}
	if req.RoomType != nil {
		fields["room_type"] = *req.RoomType
	}
	if req.PricePerNight != nil {
		fields["price_per_night"] = *req.PricePerNight
	}
	if req.Capacity != nil {
		fields["capacity"] = *req.Capacity
	}
	if req.IsAvailable != nil {
		fields["is_available"] = *req.IsAvailable
	}

	if len(fields) > 0 {
		if err := s.store.Rooms.UpdateFields(ctx, id, fields); err != nil {
			return nil, notFound(err)
		}
	}
	return s.GetRoom(ctx, id)
}

// SetAvailability flips the administrative override; it does not touch any
// booking.
func (s *Service) SetAvailability(ctx context.Context, id int64, available bool) (*domain.Room, error) {
	if err := s.store.Rooms.SetAvailability(ctx, id, available); err != nil {
		return nil, notFound(err)
	}
	return s.GetRoom(ctx, id)
}

func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.store.Rooms.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
