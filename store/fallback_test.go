package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-nepal/models"
	"hotel-nepal/store"
	"hotel-nepal/store/memory"
)

// --- Mock HotelRepository ---

type mockHotelRepo struct {
	store.HotelRepository
	findAllFn  func(ctx context.Context) ([]models.Hotel, error)
	findByIDFn func(ctx context.Context, id uint) (*models.Hotel, error)
	createFn   func(ctx context.Context, h *models.Hotel) error
}

func (m *mockHotelRepo) FindAll(ctx context.Context) ([]models.Hotel, error) {
	return m.findAllFn(ctx)
}
func (m *mockHotelRepo) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockHotelRepo) Create(ctx context.Context, h *models.Hotel) error {
	return m.createFn(ctx, h)
}

var errConnLost = errors.New("dial tcp 127.0.0.1:3306: connection refused")

func wrap(primary store.HotelRepository, enabled bool) store.Repositories {
	mem := memory.NewSeeded("")
	p := mem.Repositories()
	p.Hotels = primary
	return store.NewFallback(zerolog.Nop(), enabled).Wrap(p, mem.Repositories())
}

func TestFallback_PrimaryErrorUsesMemory(t *testing.T) {
	calls := 0
	primary := &mockHotelRepo{findAllFn: func(ctx context.Context) ([]models.Hotel, error) {
		calls++
		return nil, errConnLost
	}}
	repos := wrap(primary, true)

	hotels, err := repos.Hotels.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, hotels, 3)
	assert.Equal(t, 1, calls, "primary is not retried")
}

func TestFallback_NotFoundPassesThrough(t *testing.T) {
	primary := &mockHotelRepo{findByIDFn: func(ctx context.Context, id uint) (*models.Hotel, error) {
		return nil, store.ErrNotFound
	}}
	repos := wrap(primary, true)

	// hotel 1 exists in memory, but the primary's "not found" is authoritative
	_, err := repos.Hotels.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFallback_CreateResetsIDOnReplay(t *testing.T) {
	primary := &mockHotelRepo{createFn: func(ctx context.Context, h *models.Hotel) error {
		h.ID = 77
		return errConnLost
	}}
	repos := wrap(primary, true)

	h := &models.Hotel{Name: "New", Location: "Bhaktapur", PricePerNight: 60}
	require.NoError(t, repos.Hotels.Create(context.Background(), h))
	assert.Equal(t, uint(4), h.ID)
}

func TestFallback_Disabled(t *testing.T) {
	primary := &mockHotelRepo{findAllFn: func(ctx context.Context) ([]models.Hotel, error) {
		return nil, errConnLost
	}}
	repos := wrap(primary, false)

	_, err := repos.Hotels.FindAll(context.Background())
	assert.ErrorIs(t, err, errConnLost)
}
