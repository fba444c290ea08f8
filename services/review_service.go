package services

import (
	"context"
	"errors"
	"strings"

	"hotel-nepal/models"
	"hotel-nepal/store"
	"hotel-nepal/validation"
)

type ReviewRequest struct {
	Rating  *float64 `json:"rating"`
	Comment string   `json:"comment"`
	UserID  *uint    `json:"user_id"`
}

type ReviewService struct {
	reviews store.ReviewRepository
	hotels  store.HotelRepository
}

func NewReviewService(reviews store.ReviewRepository, hotels store.HotelRepository) *ReviewService {
	return &ReviewService{reviews: reviews, hotels: hotels}
}

// ForHotel lists a hotel's reviews, newest first.
func (s *ReviewService) ForHotel(ctx context.Context, hotelID uint) ([]models.Review, error) {
	if err := s.hotelExists(ctx, hotelID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.FindByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, hotelID uint, req ReviewRequest) (*models.Review, error) {
	if verr := validation.Review(req.Rating, req.Comment); verr != nil {
		return nil, verr
	}
	if err := s.hotelExists(ctx, hotelID); err != nil {
		return nil, err
	}
	rv := models.Review{
		HotelID: hotelID,
		UserID:  req.UserID,
		Rating:  int(*req.Rating),
		Comment: strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, &rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (s *ReviewService) hotelExists(ctx context.Context, id uint) error {
	_, err := s.hotels.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrHotelNotFound
	}
	return err
}
