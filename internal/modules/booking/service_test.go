package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.ConnectQuiet(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	// a single connection keeps in-memory sqlite consistent across goroutines
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := repository.NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func seedUser(t *testing.T, store *repository.Store, username string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

func seedRoom(t *testing.T, store *repository.Store, number string, price float64, available bool) *domain.Room {
	t.Helper()
	r := &domain.Room{
		RoomNumber:    number,
		RoomType:      "Standard",
		PricePerNight: price,
		Capacity:      2,
		IsAvailable:   available,
	}
	require.NoError(t, store.Rooms.Create(context.Background(), r))
	return r
}

func asPrincipal(u *domain.User) domain.Principal {
	return domain.Principal{UserID: u.ID, Role: u.Role}
}

// day returns midnight UTC offset days from now.
func day(offset int) time.Time {
	return NormalizeDate(time.Now().AddDate(0, 0, offset))
}

func TestCreateBookingComputesTotalAndCreatesProfile(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	room := seedRoom(t, store, "101", 100, true)

	b, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(7), day(10))
	require.NoError(t, err)

	assert.Equal(t, 300.0, b.TotalAmount)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, room.ID, b.RoomID)

	profile, err := store.Guests.GetByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileUnknown, profile.PhoneNo)
	assert.Equal(t, domain.ProfileUnknown, profile.Address)
	assert.Equal(t, profile.ID, b.GuestID)
}

func TestCreateBookingReusesExistingProfile(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	room := seedRoom(t, store, "101", 100, true)
	profile := &domain.GuestProfile{UserID: alice.ID, PhoneNo: "+15551234567", Address: "1 Main St"}
	require.NoError(t, store.Guests.Create(ctx, profile))

	b, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(7), day(8))
	require.NoError(t, err)
	assert.Equal(t, profile.ID, b.GuestID)
}

func TestCreateBookingDateValidation(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	room := seedRoom(t, store, "101", 100, true)

	_, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(10), day(10))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(10), day(7))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(-1), day(2))
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestCreateBookingRoomChecks(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	closed := seedRoom(t, store, "101", 100, false)

	_, err := svc.CreateBooking(ctx, asPrincipal(alice), closed.ID, day(7), day(9))
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	_, err = svc.CreateBooking(ctx, asPrincipal(alice), 9999, day(7), day(9))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateBookingOverlaps(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	bob := seedUser(t, store, "bob", domain.RoleGuest)
	room := seedRoom(t, store, "101", 100, true)

	_, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(10), day(13))
	require.NoError(t, err)

	cases := []struct {
		name     string
		in, out  time.Time
		conflict bool
	}{
		{"identical range", day(10), day(13), true},
		{"partial overlap at end", day(12), day(14), true},
		{"enclosing range", day(9), day(14), true},
		{"contained range", day(11), day(12), true},
		{"back to back after", day(13), day(15), false},
		{"back to back before", day(8), day(10), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBooking(ctx, asPrincipal(bob), room.ID, tc.in, tc.out)
			if tc.conflict {
				assert.ErrorIs(t, err, ErrDateConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCancelledBookingFreesDates(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	bob := seedUser(t, store, "bob", domain.RoleGuest)
	room := seedRoom(t, store, "101", 100, true)

	b, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(10), day(13))
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, asPrincipal(alice), b.ID)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, asPrincipal(bob), room.ID, day(10), day(13))
	assert.NoError(t, err)
}

func TestCancelBookingAuthorization(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	bob := seedUser(t, store, "bob", domain.RoleGuest)
	staff := seedUser(t, store, "carol", domain.RoleStaff)
	room := seedRoom(t, store, "101", 100, true)

	b1, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(7), day(9))
	require.NoError(t, err)
	b2, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(20), day(22))
	require.NoError(t, err)

	_, err = svc.CancelBooking(ctx, asPrincipal(bob), b1.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := svc.CancelBooking(ctx, asPrincipal(alice), b1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	_, err = svc.CancelBooking(ctx, asPrincipal(alice), b1.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	// staff may cancel anyone's booking
	_, err = svc.CancelBooking(ctx, asPrincipal(staff), b2.ID)
	assert.NoError(t, err)

	_, err = svc.CancelBooking(ctx, asPrincipal(staff), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBookingScoping(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	bob := seedUser(t, store, "bob", domain.RoleGuest)
	staff := seedUser(t, store, "carol", domain.RoleStaff)
	room := seedRoom(t, store, "101", 100, true)

	b, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(7), day(9))
	require.NoError(t, err)

	got, err := svc.GetBooking(ctx, asPrincipal(alice), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = svc.GetBooking(ctx, asPrincipal(bob), b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetBooking(ctx, asPrincipal(staff), b.ID)
	assert.NoError(t, err)

	_, err = svc.GetBooking(ctx, asPrincipal(staff), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBookingsScoping(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	bob := seedUser(t, store, "bob", domain.RoleGuest)
	staff := seedUser(t, store, "carol", domain.RoleStaff)
	room := seedRoom(t, store, "101", 100, true)

	_, err := svc.CreateBooking(ctx, asPrincipal(alice), room.ID, day(7), day(9))
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, asPrincipal(bob), room.ID, day(9), day(11))
	require.NoError(t, err)

	all, err := svc.ListBookings(ctx, asPrincipal(staff))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.ListBookings(ctx, asPrincipal(alice))
	require.NoError(t, err)
	assert.Len(t, own, 1)

	// /my always scopes to the caller, staff included
	mine, err := svc.ListMine(ctx, asPrincipal(staff))
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestCreateBookingConcurrentRace(t *testing.T) {
	store := setupStore(t)
	svc := NewService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice", domain.RoleGuest)
	bob := seedUser(t, store, "bob", domain.RoleGuest)
	room := seedRoom(t, store, "101", 100, true)

	// profiles up front so the transactions race only on the insert
	require.NoError(t, store.Guests.Create(ctx, &domain.GuestProfile{
		UserID: alice.ID, PhoneNo: domain.ProfileUnknown, Address: domain.ProfileUnknown,
	}))
	require.NoError(t, store.Guests.Create(ctx, &domain.GuestProfile{
		UserID: bob.ID, PhoneNo: domain.ProfileUnknown, Address: domain.ProfileUnknown,
	}))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, u := range []*domain.User{alice, bob} {
		wg.Add(1)
		go func(i int, u *domain.User) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(ctx, asPrincipal(u), room.ID, day(10), day(13))
		}(i, u)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case err == ErrDateConflict:
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one request should win")
	assert.Equal(t, 1, lost, "the loser should see a date conflict")

	n, err := store.Bookings.CountOverlapping(ctx, room.ID, day(10), day(13))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
