package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"hotelbooking/internal/domain"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// staffGroup is the registration group that yields a staff account.
const staffGroup = "staff"

var phoneRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)

type Service struct {
	store *repository.Store
	jwt   *jwtsvc.Service
}

func NewService(store *repository.Store, jwt *jwtsvc.Service) *Service {
	return &Service{store: store, jwt: jwt}
}

// Register creates the user and their guest profile in one transaction.
// Contact details default to the profile sentinel when omitted.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	if req.PhoneNo != "" && !phoneRe.MatchString(req.PhoneNo) {
		return nil, ErrInvalidPhone
	}

	if _, err := s.store.Users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.store.Users.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleGuest
	if strings.EqualFold(strings.TrimSpace(req.GroupName), staffGroup) {
		role = domain.RoleStaff
	}

	phone := req.PhoneNo
	if phone == "" {
		phone = domain.ProfileUnknown
	}
	address := req.Address
	if address == "" {
		address = domain.ProfileUnknown
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashed),
		Role:         role,
	}

	err = s.store.WithTransaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Guests.Create(ctx, &domain.GuestProfile{
			UserID:  user.ID,
			PhoneNo: phone,
			Address: address,
		})
	})
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*jwtsvc.Pair, *domain.User, error) {
	user, err := s.store.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.jwt.GeneratePair(user.ID, string(user.Role))
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return pair, user, nil
}

// Refresh rotates a token pair. The user is re-read so a role change or a
// deleted account invalidates outstanding refresh tokens.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*jwtsvc.Pair, error) {
	claims, err := s.jwt.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.store.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	return s.jwt.GeneratePair(user.ID, string(user.Role))
}
