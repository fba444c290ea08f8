package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hotel-nepal/events"
	"hotel-nepal/models"
	"hotel-nepal/observability"
	"hotel-nepal/store"
	"hotel-nepal/validation"
)

// EventPublisher sends booking lifecycle events. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Notifier tells the guest about a new booking. Failures are logged only.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *models.Booking) error
}

type BookingRequest struct {
	HotelID        uint     `json:"hotel_id"`
	GuestName      string   `json:"guest_name"`
	GuestEmail     string   `json:"guest_email"`
	GuestPhone     string   `json:"guest_phone"`
	CheckInDate    string   `json:"check_in_date"`
	CheckOutDate   string   `json:"check_out_date"`
	NumberOfGuests *float64 `json:"number_of_guests"`
	TotalPrice     *float64 `json:"total_price"`
}

type BookingService struct {
	bookings store.BookingRepository
	hotels   store.HotelRepository
	events   EventPublisher
	notifier Notifier
	now      func() time.Time
	log      zerolog.Logger
}

// NewBookingService takes a nil publisher when no broker is configured.
func NewBookingService(bookings store.BookingRepository, hotels store.HotelRepository, pub EventPublisher, l zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		hotels:   hotels,
		events:   pub,
		now:      time.Now,
		log:      l.With().Str("service", "bookings").Logger(),
	}
}

func (s *BookingService) WithNotifier(n Notifier) *BookingService {
	s.notifier = n
	return s
}

func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// Create validates the request, prices it from the hotel's nightly rate and
// stores it as confirmed. The client's total_price is only checked for
// presence; the stored total is always nights × price_per_night.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	dates, verr := validation.Booking(validation.BookingInput{
		HotelID:        req.HotelID,
		GuestName:      req.GuestName,
		GuestEmail:     req.GuestEmail,
		GuestPhone:     req.GuestPhone,
		CheckInDate:    req.CheckInDate,
		CheckOutDate:   req.CheckOutDate,
		NumberOfGuests: req.NumberOfGuests,
		TotalPrice:     req.TotalPrice,
	}, s.now())
	if verr != nil {
		return nil, verr
	}

	hotel, err := s.hotels.FindByID(ctx, req.HotelID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}

	nights := int(math.Ceil(dates.CheckOut.Sub(dates.CheckIn).Hours() / 24))
	if nights <= 0 {
		return nil, ErrInvalidDateRange
	}

	b := models.Booking{
		HotelID:        hotel.ID,
		GuestName:      strings.TrimSpace(req.GuestName),
		GuestEmail:     strings.TrimSpace(req.GuestEmail),
		GuestPhone:     strings.TrimSpace(req.GuestPhone),
		CheckInDate:    dates.CheckIn,
		CheckOutDate:   dates.CheckOut,
		NumberOfGuests: int(*req.NumberOfGuests),
		Nights:         nights,
		TotalPrice:     float64(nights) * hotel.PricePerNight,
		Status:         models.StatusConfirmed,
	}
	if err := s.bookings.Create(ctx, &b); err != nil {
		return nil, err
	}
	b.HotelName = hotel.Name
	b.HotelLocation = hotel.Location

	observability.BookingsCreated.Inc()
	s.publish(ctx, events.BookingCreated, &b)
	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, &b); err != nil {
			s.log.Warn().Err(err).Uint("booking_id", b.ID).Msg("booking confirmation not sent")
		}
	}
	return &b, nil
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Booking, error) {
	st := models.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	b, err := s.bookings.Update(ctx, id, models.BookingUpdate{Status: &st})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.BookingStatusChanged, b)
	return b, nil
}

// Cancel is the only way a booking leaves the list: it is never removed.
func (s *BookingService) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	return s.UpdateStatus(ctx, id, string(models.StatusCancelled))
}

func (s *BookingService) publish(ctx context.Context, key string, b *models.Booking) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(ctx, key, events.BookingEvent{
		BookingID:  b.ID,
		HotelID:    b.HotelID,
		Status:     string(b.Status),
		GuestEmail: b.GuestEmail,
		TotalPrice: b.TotalPrice,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("routing_key", key).Uint("booking_id", b.ID).Msg("publish booking event failed")
	}
}
