package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"hotel-nepal/models"
	"hotel-nepal/store"
	"hotel-nepal/validation"
)

const hotelsAllKey = "hotels:all"

func hotelKey(id uint) string { return fmt.Sprintf("hotel:%d", id) }

// Cache is the read cache in front of hotel reads. Errors are logged and the
// store is used instead.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Del(ctx context.Context, keys ...string) error
}

type HotelRequest struct {
	Name          string         `json:"name"`
	Location      string         `json:"location"`
	Description   string         `json:"description"`
	PricePerNight *float64       `json:"price_per_night"`
	Rating        *float64       `json:"rating"`
	ImageURL      string         `json:"image_url"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	Country       string         `json:"country"`
	Amenities     datatypes.JSON `json:"amenities"`
}

type HotelPatchRequest struct {
	Name          *string        `json:"name"`
	Location      *string        `json:"location"`
	Description   *string        `json:"description"`
	PricePerNight *float64       `json:"price_per_night"`
	Rating        *float64       `json:"rating"`
	ImageURL      *string        `json:"image_url"`
	Address       *string        `json:"address"`
	City          *string        `json:"city"`
	Country       *string        `json:"country"`
	Amenities     datatypes.JSON `json:"amenities"`
}

type HotelService struct {
	hotels store.HotelRepository
	cache  Cache
	log    zerolog.Logger
}

// NewHotelService takes a nil cache when Redis is not configured.
func NewHotelService(hotels store.HotelRepository, cache Cache, l zerolog.Logger) *HotelService {
	return &HotelService{hotels: hotels, cache: cache, log: l.With().Str("service", "hotels").Logger()}
}

// List returns hotels in id order, windowed when page.Limit is set.
func (s *HotelService) List(ctx context.Context, page validation.Page) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if !s.cached(ctx, hotelsAllKey, &hotels) {
		var err error
		hotels, err = s.hotels.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		s.remember(ctx, hotelsAllKey, hotels)
	}
	if hotels == nil {
		hotels = []models.Hotel{}
	}
	if page.Limit == 0 {
		return hotels, nil
	}
	start := page.Offset()
	if start >= len(hotels) {
		return []models.Hotel{}, nil
	}
	end := min(start+page.Limit, len(hotels))
	return hotels[start:end], nil
}

func (s *HotelService) Get(ctx context.Context, id uint) (*models.Hotel, error) {
	var h models.Hotel
	if s.cached(ctx, hotelKey(id), &h) {
		return &h, nil
	}
	found, err := s.hotels.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	s.remember(ctx, hotelKey(id), found)
	return found, nil
}

func (s *HotelService) Create(ctx context.Context, req HotelRequest) (*models.Hotel, error) {
	if verr := validation.Hotel(validation.HotelInput{
		Name: req.Name, Location: req.Location, PricePerNight: req.PricePerNight, Rating: req.Rating,
	}); verr != nil {
		return nil, verr
	}

	h := models.Hotel{
		Name:          req.Name,
		Location:      req.Location,
		Description:   req.Description,
		PricePerNight: *req.PricePerNight,
		ImageURL:      req.ImageURL,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Amenities:     req.Amenities,
	}
	if req.Rating != nil {
		h.Rating = *req.Rating
	}
	if err := s.hotels.Create(ctx, &h); err != nil {
		return nil, err
	}
	s.invalidate(ctx, h.ID)
	return &h, nil
}

func (s *HotelService) Update(ctx context.Context, id uint, req HotelPatchRequest) (*models.Hotel, error) {
	if verr := validation.HotelPatch(req.Name, req.Location, req.PricePerNight, req.Rating); verr != nil {
		return nil, verr
	}
	h, err := s.hotels.Update(ctx, id, models.HotelUpdate{
		Name:          req.Name,
		Location:      req.Location,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Rating:        req.Rating,
		ImageURL:      req.ImageURL,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Amenities:     req.Amenities,
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return h, nil
}

func (s *HotelService) Delete(ctx context.Context, id uint) (*models.Hotel, error) {
	h, err := s.hotels.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return h, nil
}

func (s *HotelService) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (s *HotelService) remember(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *HotelService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, hotelsAllKey, hotelKey(id)); err != nil {
		s.log.Warn().Err(err).Uint("hotel_id", id).Msg("cache invalidation failed")
	}
}
