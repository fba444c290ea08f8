package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-nepal/events"
	"hotel-nepal/models"
	"hotel-nepal/services"
	"hotel-nepal/store/memory"
	"hotel-nepal/validation"
)

type recordedEvent struct {
	key     string
	payload events.BookingEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, key string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{key: key, payload: payload.(events.BookingEvent)})
	return f.err
}

func fptr(f float64) *float64 { return &f }

var fixedNow = time.Date(2030, 1, 10, 15, 30, 0, 0, time.UTC)

func newBookingService(t *testing.T) (*services.BookingService, *fakePublisher) {
	t.Helper()
	st := memory.NewSeeded(t.TempDir())
	pub := &fakePublisher{}
	svc := services.NewBookingService(st.Bookings(), st.Hotels(), pub, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })
	return svc, pub
}

func validBooking() services.BookingRequest {
	return services.BookingRequest{
		HotelID:        1,
		GuestName:      "Sita Sharma",
		GuestEmail:     "sita@example.com",
		GuestPhone:     "+977 9812345678",
		CheckInDate:    "2030-01-10",
		CheckOutDate:   "2030-01-12",
		NumberOfGuests: fptr(2),
		TotalPrice:     fptr(1),
	}
}

func TestBookingService_CreatePricesFromHotel(t *testing.T) {
	svc, pub := newBookingService(t)

	b, err := svc.Create(context.Background(), validBooking())
	require.NoError(t, err)

	assert.Equal(t, uint(2), b.ID)
	assert.Equal(t, 2, b.Nights)
	assert.Equal(t, 300.0, b.TotalPrice, "client total is replaced by nights × nightly rate")
	assert.Equal(t, models.StatusConfirmed, b.Status)
	assert.Equal(t, "Hotel Yak & Yeti", b.HotelName)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.BookingCreated, pub.events[0].key)
	assert.Equal(t, b.ID, pub.events[0].payload.BookingID)
}

func TestBookingService_CreateIsNotIdempotent(t *testing.T) {
	svc, _ := newBookingService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validBooking())
	require.NoError(t, err)
	second, err := svc.Create(ctx, validBooking())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBookingService_CreateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *services.BookingRequest)
		message string
		err     error
	}{
		{
			name:    "missing guest name",
			mutate:  func(r *services.BookingRequest) { r.GuestName = "" },
			message: "All booking fields are required",
		},
		{
			name:    "check-in yesterday",
			mutate:  func(r *services.BookingRequest) { r.CheckInDate = "2030-01-09" },
			message: "Check-in date cannot be in the past",
		},
		{
			name:    "check-out equals check-in",
			mutate:  func(r *services.BookingRequest) { r.CheckOutDate = r.CheckInDate },
			message: "Check-out date must be after check-in date",
		},
		{
			name:    "fractional guests",
			mutate:  func(r *services.BookingRequest) { r.NumberOfGuests = fptr(1.5) },
			message: "Number of guests must be a positive integer",
		},
		{
			name:    "zero total",
			mutate:  func(r *services.BookingRequest) { r.TotalPrice = fptr(0) },
			message: "Total price must be a positive number",
		},
		{
			name:   "unknown hotel",
			mutate: func(r *services.BookingRequest) { r.HotelID = 99 },
			err:    services.ErrHotelNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, pub := newBookingService(t)
			req := validBooking()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				var verr *validation.Error
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, 400, verr.Status)
				assert.Equal(t, tc.message, verr.Message)
			}
			assert.Empty(t, pub.events)
		})
	}
}

func TestBookingService_PublishFailureDoesNotFailCreate(t *testing.T) {
	svc, pub := newBookingService(t)
	pub.err = errors.New("broker down")

	_, err := svc.Create(context.Background(), validBooking())
	assert.NoError(t, err)
}

func TestBookingService_StatusAndCancel(t *testing.T) {
	svc, pub := newBookingService(t)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, 1, "archived")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	b, err := svc.UpdateStatus(ctx, 1, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, b.Status)

	b, err = svc.Cancel(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "cancelled bookings stay listed")

	_, err = svc.Cancel(ctx, 42)
	assert.ErrorIs(t, err, services.ErrBookingNotFound)

	_, err = svc.Get(ctx, 42)
	assert.ErrorIs(t, err, services.ErrBookingNotFound)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.BookingStatusChanged, pub.events[1].key)
	assert.Equal(t, "cancelled", pub.events[1].payload.Status)
}

type fakeNotifier struct {
	sent []*models.Booking
	err  error
}

func (f *fakeNotifier) BookingConfirmed(_ context.Context, b *models.Booking) error {
	f.sent = append(f.sent, b)
	return f.err
}

func TestBookingService_NotifiesGuest(t *testing.T) {
	svc, _ := newBookingService(t)
	n := &fakeNotifier{err: errors.New("smtp down")}
	svc.WithNotifier(n)

	b, err := svc.Create(context.Background(), validBooking())
	require.NoError(t, err, "notification failure is not a booking failure")
	require.Len(t, n.sent, 1)
	assert.Equal(t, b.ID, n.sent[0].ID)
	assert.NotEmpty(t, n.sent[0].HotelName)

	_, err = svc.Create(context.Background(), services.BookingRequest{})
	require.Error(t, err)
	assert.Len(t, n.sent, 1, "rejected bookings are not announced")
}
