package store

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"hotel-nepal/models"
	"hotel-nepal/observability"
)

// Fallback replays an operation on the in-memory store when the primary
// store fails. Not-found, duplicate and file-cleanup answers are real answers
// and pass through. Nothing is retried and the two stores are never reconciled.
type Fallback struct {
	log     zerolog.Logger
	enabled bool
}

func NewFallback(l zerolog.Logger, enabled bool) Fallback {
	return Fallback{log: l.With().Str("component", "store_fallback").Logger(), enabled: enabled}
}

func (f Fallback) shouldFallback(err error) bool {
	if !f.enabled || err == nil {
		return false
	}
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrDuplicate) &&
		!errors.Is(err, ErrFileCleanup) &&
		!errors.Is(err, context.Canceled)
}

func run[T any](f Fallback, resource, op string, primary, secondary func() (T, error)) (T, error) {
	v, err := primary()
	if !f.shouldFallback(err) {
		return v, err
	}
	f.log.Warn().Err(err).Str("resource", resource).Str("op", op).Msg("primary store failed, using in-memory store")
	observability.ObserveFallback(resource, op)
	return secondary()
}

func runErr(f Fallback, resource, op string, primary, secondary func() error) error {
	_, err := run(f, resource, op,
		func() (struct{}, error) { return struct{}{}, primary() },
		func() (struct{}, error) { return struct{}{}, secondary() },
	)
	return err
}

// Wrap builds fallback decorators for every repository pair.
func (f Fallback) Wrap(primary, secondary Repositories) Repositories {
	return Repositories{
		Hotels:   &FallbackHotels{f: f, primary: primary.Hotels, secondary: secondary.Hotels},
		Bookings: &FallbackBookings{f: f, primary: primary.Bookings, secondary: secondary.Bookings},
		Users:    &FallbackUsers{f: f, primary: primary.Users, secondary: secondary.Users},
		Reviews:  &FallbackReviews{f: f, primary: primary.Reviews, secondary: secondary.Reviews},
		Products: &FallbackProducts{f: f, primary: primary.Products, secondary: secondary.Products},
	}
}

// ---------------------------
// Hotels
// ---------------------------

type FallbackHotels struct {
	f                  Fallback
	primary, secondary HotelRepository
}

func (r *FallbackHotels) Create(ctx context.Context, h *models.Hotel) error {
	return runErr(r.f, "hotels", "create",
		func() error { return r.primary.Create(ctx, h) },
		func() error { h.ID = 0; return r.secondary.Create(ctx, h) })
}

func (r *FallbackHotels) FindAll(ctx context.Context) ([]models.Hotel, error) {
	return run(r.f, "hotels", "find_all",
		func() ([]models.Hotel, error) { return r.primary.FindAll(ctx) },
		func() ([]models.Hotel, error) { return r.secondary.FindAll(ctx) })
}

func (r *FallbackHotels) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	return run(r.f, "hotels", "find_by_id",
		func() (*models.Hotel, error) { return r.primary.FindByID(ctx, id) },
		func() (*models.Hotel, error) { return r.secondary.FindByID(ctx, id) })
}

func (r *FallbackHotels) Update(ctx context.Context, id uint, u models.HotelUpdate) (*models.Hotel, error) {
	return run(r.f, "hotels", "update",
		func() (*models.Hotel, error) { return r.primary.Update(ctx, id, u) },
		func() (*models.Hotel, error) { return r.secondary.Update(ctx, id, u) })
}

func (r *FallbackHotels) Delete(ctx context.Context, id uint) (*models.Hotel, error) {
	return run(r.f, "hotels", "delete",
		func() (*models.Hotel, error) { return r.primary.Delete(ctx, id) },
		func() (*models.Hotel, error) { return r.secondary.Delete(ctx, id) })
}

// ---------------------------
// Bookings
// ---------------------------

type FallbackBookings struct {
	f                  Fallback
	primary, secondary BookingRepository
}

func (r *FallbackBookings) Create(ctx context.Context, b *models.Booking) error {
	return runErr(r.f, "bookings", "create",
		func() error { return r.primary.Create(ctx, b) },
		func() error { b.ID = 0; return r.secondary.Create(ctx, b) })
}

func (r *FallbackBookings) FindAll(ctx context.Context) ([]models.Booking, error) {
	return run(r.f, "bookings", "find_all",
		func() ([]models.Booking, error) { return r.primary.FindAll(ctx) },
		func() ([]models.Booking, error) { return r.secondary.FindAll(ctx) })
}

func (r *FallbackBookings) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return run(r.f, "bookings", "find_by_id",
		func() (*models.Booking, error) { return r.primary.FindByID(ctx, id) },
		func() (*models.Booking, error) { return r.secondary.FindByID(ctx, id) })
}

func (r *FallbackBookings) Update(ctx context.Context, id uint, u models.BookingUpdate) (*models.Booking, error) {
	return run(r.f, "bookings", "update",
		func() (*models.Booking, error) { return r.primary.Update(ctx, id, u) },
		func() (*models.Booking, error) { return r.secondary.Update(ctx, id, u) })
}

// ---------------------------
// Users
// ---------------------------

type FallbackUsers struct {
	f                  Fallback
	primary, secondary UserRepository
}

func (r *FallbackUsers) Create(ctx context.Context, u *models.User) error {
	return runErr(r.f, "users", "create",
		func() error { return r.primary.Create(ctx, u) },
		func() error { u.ID = 0; return r.secondary.Create(ctx, u) })
}

func (r *FallbackUsers) FindAll(ctx context.Context) ([]models.User, error) {
	return run(r.f, "users", "find_all",
		func() ([]models.User, error) { return r.primary.FindAll(ctx) },
		func() ([]models.User, error) { return r.secondary.FindAll(ctx) })
}

func (r *FallbackUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return run(r.f, "users", "find_by_id",
		func() (*models.User, error) { return r.primary.FindByID(ctx, id) },
		func() (*models.User, error) { return r.secondary.FindByID(ctx, id) })
}

func (r *FallbackUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return run(r.f, "users", "find_by_email",
		func() (*models.User, error) { return r.primary.FindByEmail(ctx, email) },
		func() (*models.User, error) { return r.secondary.FindByEmail(ctx, email) })
}

func (r *FallbackUsers) Update(ctx context.Context, id uint, u models.UserUpdate) (*models.User, error) {
	return run(r.f, "users", "update",
		func() (*models.User, error) { return r.primary.Update(ctx, id, u) },
		func() (*models.User, error) { return r.secondary.Update(ctx, id, u) })
}

func (r *FallbackUsers) Delete(ctx context.Context, id uint) (*models.User, error) {
	return run(r.f, "users", "delete",
		func() (*models.User, error) { return r.primary.Delete(ctx, id) },
		func() (*models.User, error) { return r.secondary.Delete(ctx, id) })
}

// ---------------------------
// Reviews
// ---------------------------

type FallbackReviews struct {
	f                  Fallback
	primary, secondary ReviewRepository
}

func (r *FallbackReviews) Create(ctx context.Context, rv *models.Review) error {
	return runErr(r.f, "reviews", "create",
		func() error { return r.primary.Create(ctx, rv) },
		func() error { rv.ID = 0; return r.secondary.Create(ctx, rv) })
}

func (r *FallbackReviews) FindByHotel(ctx context.Context, hotelID uint) ([]models.Review, error) {
	return run(r.f, "reviews", "find_by_hotel",
		func() ([]models.Review, error) { return r.primary.FindByHotel(ctx, hotelID) },
		func() ([]models.Review, error) { return r.secondary.FindByHotel(ctx, hotelID) })
}

// ---------------------------
// Products
// ---------------------------

type FallbackProducts struct {
	f                  Fallback
	primary, secondary ProductRepository
}

func (r *FallbackProducts) Create(ctx context.Context, p *models.Product) error {
	return runErr(r.f, "products", "create",
		func() error { return r.primary.Create(ctx, p) },
		func() error { p.ID = 0; return r.secondary.Create(ctx, p) })
}

func (r *FallbackProducts) FindAll(ctx context.Context) ([]models.Product, error) {
	return run(r.f, "products", "find_all",
		func() ([]models.Product, error) { return r.primary.FindAll(ctx) },
		func() ([]models.Product, error) { return r.secondary.FindAll(ctx) })
}

func (r *FallbackProducts) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return run(r.f, "products", "find_by_id",
		func() (*models.Product, error) { return r.primary.FindByID(ctx, id) },
		func() (*models.Product, error) { return r.secondary.FindByID(ctx, id) })
}

func (r *FallbackProducts) Update(ctx context.Context, id uint, u models.ProductUpdate) (*models.Product, error) {
	return run(r.f, "products", "update",
		func() (*models.Product, error) { return r.primary.Update(ctx, id, u) },
		func() (*models.Product, error) { return r.secondary.Update(ctx, id, u) })
}

func (r *FallbackProducts) Delete(ctx context.Context, id uint) (*models.Product, error) {
	return run(r.f, "products", "delete",
		func() (*models.Product, error) { return r.primary.Delete(ctx, id) },
		func() (*models.Product, error) { return r.secondary.Delete(ctx, id) })
}
