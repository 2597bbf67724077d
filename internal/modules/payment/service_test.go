package payment

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/repository"
)

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.ConnectQuiet(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := repository.NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

type fixture struct {
	store   *repository.Store
	alice   domain.Principal
	bob     domain.Principal
	staff   domain.Principal
	booking *domain.Booking
}

// newFixture seeds a Pending booking for alice worth 300.00.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := setupStore(t)
	ctx := context.Background()

	users := map[string]*domain.User{}
	for name, role := range map[string]domain.UserRole{
		"alice": domain.RoleGuest,
		"bob":   domain.RoleGuest,
		"carol": domain.RoleStaff,
	} {
		u := &domain.User{
			Username:     name,
			Email:        name + "@example.com",
			PasswordHash: "hash",
			Role:         role,
		}
		require.NoError(t, store.Users.Create(ctx, u))
		users[name] = u
	}

	room := &domain.Room{RoomNumber: "101", RoomType: "Standard", PricePerNight: 100, Capacity: 2, IsAvailable: true}
	require.NoError(t, store.Rooms.Create(ctx, room))

	profile := &domain.GuestProfile{UserID: users["alice"].ID, PhoneNo: "+15551234567", Address: "1 Main St"}
	require.NoError(t, store.Guests.Create(ctx, profile))

	checkIn := booking.NormalizeDate(time.Now().AddDate(0, 0, 7))
	checkOut := booking.NormalizeDate(time.Now().AddDate(0, 0, 10))
	b := &domain.Booking{
		RoomID:       room.ID,
		GuestID:      profile.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalAmount:  300,
		Status:       domain.BookingPending,
	}
	require.NoError(t, store.Bookings.Create(ctx, b))

	return &fixture{
		store: store,
		alice: domain.Principal{UserID: users["alice"].ID, Role: domain.RoleGuest},
		bob:   domain.Principal{UserID: users["bob"].ID, Role: domain.RoleGuest},
		staff: domain.Principal{UserID: users["carol"].ID, Role: domain.RoleStaff},

		booking: b,
	}
}

func TestRecordPaymentConfirmsBooking(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store)
	ctx := context.Background()

	pmt, err := svc.RecordPayment(ctx, f.alice, f.booking.ID, 300, "card")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentSuccess, pmt.Status)
	assert.Equal(t, 300.0, pmt.Amount)
	assert.Equal(t, "card", pmt.Method)

	b, err := f.store.Bookings.GetByID(ctx, f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	n, err := f.store.Payments.CountSuccessForBooking(ctx, f.booking.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRecordPaymentAmountMismatchLeavesBookingPending(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, f.alice, f.booking.ID, 299.99, "card")
	assert.ErrorIs(t, err, ErrAmountMismatch)

	b, err := f.store.Bookings.GetByID(ctx, f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)

	n, err := f.store.Payments.CountSuccessForBooking(ctx, f.booking.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordPaymentCancelledBooking(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store)
	ctx := context.Background()

	require.NoError(t, f.store.Bookings.UpdateStatus(ctx, f.booking.ID, domain.BookingCancelled))

	_, err := svc.RecordPayment(ctx, f.alice, f.booking.ID, 300, "card")
	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestRecordPaymentAuthorization(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, f.bob, f.booking.ID, 300, "card")
	assert.ErrorIs(t, err, ErrForbidden)

	// staff may record a payment on anyone's booking
	_, err = svc.RecordPayment(ctx, f.staff, f.booking.ID, 300, "cash")
	assert.NoError(t, err)

	_, err = svc.RecordPayment(ctx, f.alice, 9999, 300, "card")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetPaymentScoping(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store)
	ctx := context.Background()

	pmt, err := svc.RecordPayment(ctx, f.alice, f.booking.ID, 300, "card")
	require.NoError(t, err)

	got, err := svc.GetPayment(ctx, f.alice, pmt.ID)
	require.NoError(t, err)
	assert.Equal(t, pmt.ID, got.ID)

	_, err = svc.GetPayment(ctx, f.bob, pmt.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetPayment(ctx, f.staff, pmt.ID)
	assert.NoError(t, err)

	_, err = svc.GetPayment(ctx, f.alice, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPaymentsScoping(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.store)
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, f.alice, f.booking.ID, 300, "card")
	require.NoError(t, err)

	all, err := svc.ListPayments(ctx, f.staff)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	own, err := svc.ListPayments(ctx, f.alice)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	other, err := svc.ListPayments(ctx, f.bob)
	require.NoError(t, err)
	assert.Empty(t, other)

	mine, err := svc.ListMine(ctx, f.staff)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
