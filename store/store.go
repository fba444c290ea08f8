// Package store defines the persistence ports used by the services and the
// decorator that falls back from the relational store to the in-memory one.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hotel-nepal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")

	// ErrFileCleanup means the record change was applied but an owned upload
	// could not be removed. The returned record is valid.
	ErrFileCleanup = errors.New("uploaded file cleanup failed")
)

type HotelRepository interface {
	Create(ctx context.Context, h *models.Hotel) error
	FindAll(ctx context.Context) ([]models.Hotel, error)
	FindByID(ctx context.Context, id uint) (*models.Hotel, error)
	Update(ctx context.Context, id uint, u models.HotelUpdate) (*models.Hotel, error)
	Delete(ctx context.Context, id uint) (*models.Hotel, error)
}

// BookingRepository has no Delete: bookings are cancelled through Update.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	FindAll(ctx context.Context) ([]models.Booking, error)
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	Update(ctx context.Context, id uint, u models.BookingUpdate) (*models.Booking, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uint, u models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uint) (*models.User, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *models.Review) error
	FindByHotel(ctx context.Context, hotelID uint) ([]models.Review, error)
}

// ProductRepository owns the uploaded image of each product: Delete removes
// the file before returning, and so does an Update that replaces it.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, id uint, u models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id uint) (*models.Product, error)
}

// Repositories bundles one implementation of every port.
type Repositories struct {
	Hotels   HotelRepository
	Bookings BookingRepository
	Users    UserRepository
	Reviews  ReviewRepository
	Products ProductRepository
}

// RemoveUpload deletes a file owned by a record. A missing file is not an error.
func RemoveUpload(dir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrFileCleanup, err)
	}
	return nil
}

// ReplacedImage reports the old image name an update is about to orphan.
func ReplacedImage(old string, u models.ProductUpdate) string {
	if u.Image == nil || *u.Image == old {
		return ""
	}
	return old
}
