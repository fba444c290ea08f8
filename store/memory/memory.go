// Package memory is the in-process fallback store. Records live in ordered
// slices guarded by a single RWMutex; ids are max existing + 1, assigned under
// the write lock.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"

	"hotel-nepal/models"
	"hotel-nepal/store"
)

const (
	unknownHotel    = "Unknown Hotel"
	unknownLocation = "Unknown Location"
)

type Store struct {
	mu        sync.RWMutex
	uploadDir string
	now       func() time.Time

	hotels   []models.Hotel
	bookings []models.Booking
	users    []models.User
	reviews  []models.Review
	products []models.Product
}

// New returns an empty store. uploadDir is where product images live.
func New(uploadDir string) *Store {
	return &Store{uploadDir: uploadDir, now: time.Now}
}

// NewSeeded returns a store holding the fixed demonstration records.
func NewSeeded(uploadDir string) *Store {
	s := New(uploadDir)
	s.hotels = SeedHotels()
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	for i := range s.hotels {
		s.hotels[i].ID = uint(i + 1)
		s.hotels[i].CreatedAt = created
		s.hotels[i].UpdatedAt = created
	}
	s.bookings = []models.Booking{{
		ID:             1,
		HotelID:        1,
		GuestName:      "Demo Guest",
		GuestEmail:     "guest@example.com",
		GuestPhone:     "+9779800000000",
		CheckInDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		NumberOfGuests: 2,
		Nights:         3,
		TotalPrice:     3 * s.hotels[0].PricePerNight,
		Status:         models.StatusConfirmed,
		CreatedAt:      created,
		UpdatedAt:      created,
	}}
	return s
}

// SeedHotels is the demonstration inventory shared by both stores.
func SeedHotels() []models.Hotel {
	return []models.Hotel{
		{
			Name: "Hotel Yak & Yeti", Location: "Kathmandu",
			Description:   "Heritage hotel in the heart of Kathmandu near Durbar Marg.",
			PricePerNight: 150, Rating: 4.5, ImageURL: "/uploads/yak-yeti.jpg",
			Address: "Durbar Marg", City: "Kathmandu", Country: "Nepal",
			Amenities: datatypes.JSON(`["wifi","pool","spa","restaurant"]`),
		},
		{
			Name: "Temple Tree Resort & Spa", Location: "Pokhara",
			Description:   "Lakeside resort with views of the Annapurna range.",
			PricePerNight: 120, Rating: 4.3, ImageURL: "/uploads/temple-tree.jpg",
			Address: "Gaurighat, Lakeside", City: "Pokhara", Country: "Nepal",
			Amenities: datatypes.JSON(`["wifi","pool","garden"]`),
		},
		{
			Name: "Barahi Jungle Lodge", Location: "Chitwan",
			Description:   "Eco lodge on the edge of Chitwan National Park.",
			PricePerNight: 180, Rating: 4.7, ImageURL: "/uploads/barahi.jpg",
			Address: "Andrauli, Madi", City: "Chitwan", Country: "Nepal",
			Amenities: datatypes.JSON(`["wifi","safari","restaurant"]`),
		},
	}
}

func (s *Store) Repositories() store.Repositories {
	return store.Repositories{
		Hotels:   s.Hotels(),
		Bookings: s.Bookings(),
		Users:    s.Users(),
		Reviews:  s.Reviews(),
		Products: s.Products(),
	}
}

func (s *Store) Hotels() store.HotelRepository     { return hotelRepo{s} }
func (s *Store) Bookings() store.BookingRepository { return bookingRepo{s} }
func (s *Store) Users() store.UserRepository       { return userRepo{s} }
func (s *Store) Reviews() store.ReviewRepository   { return reviewRepo{s} }
func (s *Store) Products() store.ProductRepository { return productRepo{s} }

// nextID must be called with the write lock held.
func nextID[T any](items []T, id func(T) uint) uint {
	var highest uint
	for _, it := range items {
		if v := id(it); v > highest {
			highest = v
		}
	}
	return highest + 1
}

func indexOf[T any](items []T, id uint, key func(T) uint) int {
	for i, it := range items {
		if key(it) == id {
			return i
		}
	}
	return -1
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}

// ---------------------------
// Hotels
// ---------------------------

type hotelRepo struct{ s *Store }

func hotelID(h models.Hotel) uint { return h.ID }

func (r hotelRepo) Create(ctx context.Context, h *models.Hotel) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	h.ID = nextID(r.s.hotels, hotelID)
	h.CreatedAt, h.UpdatedAt = now, now
	r.s.hotels = append(r.s.hotels, *h)
	return nil
}

func (r hotelRepo) FindAll(ctx context.Context) ([]models.Hotel, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Hotel, len(r.s.hotels))
	copy(out, r.s.hotels)
	return out, nil
}

func (r hotelRepo) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.hotels, id, hotelID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	h := r.s.hotels[i]
	return &h, nil
}

func (r hotelRepo) Update(ctx context.Context, id uint, u models.HotelUpdate) (*models.Hotel, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.hotels, id, hotelID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	u.Apply(&r.s.hotels[i])
	r.s.hotels[i].UpdatedAt = r.s.now()
	h := r.s.hotels[i]
	return &h, nil
}

func (r hotelRepo) Delete(ctx context.Context, id uint) (*models.Hotel, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.hotels, id, hotelID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	h := r.s.hotels[i]
	r.s.hotels = append(r.s.hotels[:i], r.s.hotels[i+1:]...)
	return &h, nil
}

// ---------------------------
// Bookings
// ---------------------------

type bookingRepo struct{ s *Store }

func bookingID(b models.Booking) uint { return b.ID }

// denormalize must be called with at least the read lock held.
func (s *Store) denormalize(b models.Booking) models.Booking {
	b.HotelName, b.HotelLocation = unknownHotel, unknownLocation
	if i := indexOf(s.hotels, b.HotelID, hotelID); i >= 0 {
		b.HotelName = s.hotels[i].Name
		b.HotelLocation = s.hotels[i].Location
	}
	return b
}

func (r bookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	b.ID = nextID(r.s.bookings, bookingID)
	b.CreatedAt, b.UpdatedAt = now, now
	b.HotelName, b.HotelLocation = "", ""
	r.s.bookings = append(r.s.bookings, *b)
	return nil
}

func (r bookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Booking, 0, len(r.s.bookings))
	for _, b := range r.s.bookings {
		out = append(out, r.s.denormalize(b))
	}
	return out, nil
}

func (r bookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.bookings, id, bookingID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	b := r.s.denormalize(r.s.bookings[i])
	return &b, nil
}

func (r bookingRepo) Update(ctx context.Context, id uint, u models.BookingUpdate) (*models.Booking, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.bookings, id, bookingID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	u.Apply(&r.s.bookings[i])
	r.s.bookings[i].UpdatedAt = r.s.now()
	b := r.s.denormalize(r.s.bookings[i])
	return &b, nil
}

// ---------------------------
// Users
// ---------------------------

type userRepo struct{ s *Store }

func userID(u models.User) uint { return u.ID }

func (r userRepo) Create(ctx context.Context, u *models.User) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrDuplicate
		}
	}
	now := r.s.now()
	u.ID = nextID(r.s.users, userID)
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r userRepo) FindAll(ctx context.Context) ([]models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.User, len(r.s.users))
	copy(out, r.s.users)
	return out, nil
}

func (r userRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.users, id, userID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	u := r.s.users[i]
	return &u, nil
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r userRepo) Update(ctx context.Context, id uint, u models.UserUpdate) (*models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.users, id, userID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	u.Apply(&r.s.users[i])
	r.s.users[i].UpdatedAt = r.s.now()
	out := r.s.users[i]
	return &out, nil
}

func (r userRepo) Delete(ctx context.Context, id uint) (*models.User, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.users, id, userID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	u := r.s.users[i]
	r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
	return &u, nil
}

// ---------------------------
// Reviews
// ---------------------------

type reviewRepo struct{ s *Store }

func reviewID(rv models.Review) uint { return rv.ID }

func (r reviewRepo) Create(ctx context.Context, rv *models.Review) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv.ID = nextID(r.s.reviews, reviewID)
	rv.CreatedAt = r.s.now()
	r.s.reviews = append(r.s.reviews, *rv)
	return nil
}

func (r reviewRepo) FindByHotel(ctx context.Context, hotelID uint) ([]models.Review, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Review{}
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		if rv := r.s.reviews[i]; rv.HotelID == hotelID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// ---------------------------
// Products
// ---------------------------

type productRepo struct{ s *Store }

func productID(p models.Product) uint { return p.ID }

func (r productRepo) Create(ctx context.Context, p *models.Product) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	p.ID = nextID(r.s.products, productID)
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.products = append(r.s.products, *p)
	return nil
}

func (r productRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.Product, len(r.s.products))
	copy(out, r.s.products)
	return out, nil
}

func (r productRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.products, id, productID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	p := r.s.products[i]
	return &p, nil
}

func (r productRepo) Update(ctx context.Context, id uint, u models.ProductUpdate) (*models.Product, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.products, id, productID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	orphan := store.ReplacedImage(r.s.products[i].Image, u)
	u.Apply(&r.s.products[i])
	r.s.products[i].UpdatedAt = r.s.now()
	p := r.s.products[i]
	if err := store.RemoveUpload(r.s.uploadDir, orphan); err != nil {
		return &p, err
	}
	return &p, nil
}

func (r productRepo) Delete(ctx context.Context, id uint) (*models.Product, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.products, id, productID)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	p := r.s.products[i]
	r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
	if err := store.RemoveUpload(r.s.uploadDir, p.Image); err != nil {
		return &p, err
	}
	return &p, nil
}
