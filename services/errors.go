package services

import "errors"

var (
	ErrHotelNotFound      = errors.New("hotel not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoImage            = errors.New("no image provided")
	ErrImageTooLarge      = errors.New("image too large")
	ErrNotAnImage         = errors.New("not an image")
)
