package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
)

func setupService(t *testing.T) (*Service, *repository.Store) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.ConnectQuiet(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := repository.NewStore(db)
	require.NoError(t, store.Migrate())

	j := jwtsvc.New("test-secret", 15*time.Minute, 24*time.Hour)
	return NewService(store, j), store
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Username: "alice",
		Password: "supersecret",
		Email:    "Alice@Example.com",
		PhoneNo:  "+15551234567",
		Address:  "1 Main St",
	}
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleGuest, user.Role)
	assert.Empty(t, user.PasswordHash)

	stored, err := store.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))

	profile, err := store.Guests.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", profile.PhoneNo)
	assert.Equal(t, "1 Main St", profile.Address)
}

func TestRegisterDefaultsProfileFields(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	req := validRegister()
	req.PhoneNo = ""
	req.Address = ""

	user, err := svc.Register(ctx, req)
	require.NoError(t, err)

	profile, err := store.Guests.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileUnknown, profile.PhoneNo)
	assert.Equal(t, domain.ProfileUnknown, profile.Address)
}

func TestRegisterStaffGroup(t *testing.T) {
	svc, _ := setupService(t)

	req := validRegister()
	req.GroupName = "staff"

	user, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, user.Role)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	req := validRegister()
	req.Password = "short"
	_, err := svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrWeakPassword)

	req = validRegister()
	req.PhoneNo = "not-a-phone"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidPhone)

	req = validRegister()
	req.PhoneNo = "12345"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	dup := validRegister()
	dup.Username = "other"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	dup = validRegister()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	pair, user, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	_, _, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Username: "nobody", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.Access)
	assert.NotEmpty(t, fresh.Refresh)

	// an access token is not accepted as a refresh token
	_, err = svc.Refresh(ctx, pair.Access)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}
