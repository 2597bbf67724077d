package guest

import (
	"context"
	"errors"
	"regexp"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"

	"gorm.io/gorm"
)

var phoneRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)

type Service struct {
	store *repository.Store
}

func NewService(store *repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateProfile(ctx context.Context, p domain.Principal, req CreateProfileRequest) (*domain.GuestProfile, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}

	if !phoneRe.MatchString(req.PhoneNo) {
		return nil, ErrInvalidPhone
	}

	userID := p.UserID
	if req.UserID != 0 && req.UserID != p.UserID {
		if !p.IsStaff() {
			return nil, ErrForbidden
		}
		userID = req.UserID
	}

	if _, err := s.store.Guests.GetByUserID(ctx, userID); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile := &domain.GuestProfile{
		UserID:  userID,
		PhoneNo: req.PhoneNo,
		Address: req.Address,
	}
	if err := s.store.Guests.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) GetProfile(ctx context.Context, p domain.Principal, id int64) (*domain.GuestProfile, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}

	profile, err := s.store.Guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !p.CanManage(profile.UserID) {
		return nil, ErrForbidden
	}
	return profile, nil
}

// ListProfiles returns every profile for staff; everyone else sees at most
// their own.
func (s *Service) ListProfiles(ctx context.Context, p domain.Principal) ([]domain.GuestProfile, error) {
	if p.IsZero() {
		return nil, ErrUnauthorized
	}
	if p.IsStaff() {
		return s.store.Guests.List(ctx)
	}

	profile, err := s.store.Guests.GetByUserID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []domain.GuestProfile{}, nil
		}
		return nil, err
	}
	return []domain.GuestProfile{*profile}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, p domain.Principal, id int64, req UpdateProfileRequest) (*domain.GuestProfile, error) {
	if !phoneRe.MatchString(req.PhoneNo) {
		return nil, ErrInvalidPhone
	}

	profile, err := s.GetProfile(ctx, p, id)
	if err != nil {
		return nil, err
	}

	profile.PhoneNo = req.PhoneNo
	profile.Address = req.Address
	if err := s.store.Guests.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) DeleteProfile(ctx context.Context, p domain.Principal, id int64) error {
	if _, err := s.GetProfile(ctx, p, id); err != nil {
		return err
	}
	return s.store.Guests.Delete(ctx, id)
}
