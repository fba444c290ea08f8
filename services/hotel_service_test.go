package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-nepal/cache"
	"hotel-nepal/services"
	"hotel-nepal/store/memory"
	"hotel-nepal/validation"
)

func TestHotelService_CacheInvalidatedOnWrite(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedis(mr.Addr(), "", 0, time.Minute)
	t.Cleanup(func() { _ = rc.Close() })

	svc := services.NewHotelService(memory.NewSeeded("").Hotels(), rc, zerolog.Nop())
	ctx := context.Background()

	hotels, err := svc.List(ctx, validation.Page{})
	require.NoError(t, err)
	assert.Len(t, hotels, 3)
	assert.True(t, mr.Exists("hotels:all"))

	_, err = svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, mr.Exists("hotel:2"))

	created, err := svc.Create(ctx, services.HotelRequest{
		Name: "Dwarika's", Location: "Kathmandu", PricePerNight: fptr(220),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(4), created.ID)
	assert.False(t, mr.Exists("hotels:all"))

	hotels, err = svc.List(ctx, validation.Page{})
	require.NoError(t, err)
	assert.Len(t, hotels, 4)

	name := "Temple Tree"
	_, err = svc.Update(ctx, 2, services.HotelPatchRequest{Name: &name})
	require.NoError(t, err)
	assert.False(t, mr.Exists("hotel:2"))
}

func TestHotelService_WithoutCache(t *testing.T) {
	svc := services.NewHotelService(memory.NewSeeded("").Hotels(), nil, zerolog.Nop())
	ctx := context.Background()

	page, err := svc.List(ctx, validation.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, uint(3), page[0].ID)

	empty, err := svc.List(ctx, validation.Page{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.Get(ctx, 77)
	assert.ErrorIs(t, err, services.ErrHotelNotFound)

	_, err = svc.Delete(ctx, 77)
	assert.ErrorIs(t, err, services.ErrHotelNotFound)

	_, err = svc.Create(ctx, services.HotelRequest{Name: "X", Location: "Y", PricePerNight: fptr(-1)})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Price must be a positive number", verr.Message)

	_, err = svc.Update(ctx, 1, services.HotelPatchRequest{Rating: fptr(6)})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Rating must be between 0 and 5", verr.Message)
}
