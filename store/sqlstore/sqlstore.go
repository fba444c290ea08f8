// Package sqlstore implements the store ports on top of gorm. It works with
// the MySQL and PostgreSQL dialectors; every query is parameterized.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"hotel-nepal/models"
	"hotel-nepal/store"
)

const mysqlDuplicateEntry = 1062

type Store struct {
	db        *gorm.DB
	uploadDir string
}

func New(db *gorm.DB, uploadDir string) *Store {
	return &Store{db: db, uploadDir: uploadDir}
}

func (s *Store) Repositories() store.Repositories {
	return store.Repositories{
		Hotels:   &hotelRepo{db: s.db},
		Bookings: &bookingRepo{db: s.db},
		Users:    &userRepo{db: s.db},
		Reviews:  &reviewRepo{db: s.db},
		Products: &productRepo{db: s.db, uploadDir: s.uploadDir},
	}
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	var me *gomysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}

// ---------------------------
// Hotels
// ---------------------------

type hotelRepo struct{ db *gorm.DB }

func (r *hotelRepo) Create(ctx context.Context, h *models.Hotel) error {
	return translate(r.db.WithContext(ctx).Create(h).Error)
}

func (r *hotelRepo) FindAll(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, translate(err)
	}
	return hotels, nil
}

func (r *hotelRepo) FindByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var h models.Hotel
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, translate(err)
	}
	return &h, nil
}

func (r *hotelRepo) Update(ctx context.Context, id uint, u models.HotelUpdate) (*models.Hotel, error) {
	var h models.Hotel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&h, id).Error; err != nil {
			return err
		}
		if cols := u.Columns(); len(cols) > 0 {
			if err := tx.Model(&h).Updates(cols).Error; err != nil {
				return err
			}
		}
		return tx.First(&h, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &h, nil
}

func (r *hotelRepo) Delete(ctx context.Context, id uint) (*models.Hotel, error) {
	var h models.Hotel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&h, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Hotel{}, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &h, nil
}

// ---------------------------
// Bookings
// ---------------------------

type bookingRepo struct{ db *gorm.DB }

const bookingWithHotel = "bookings.*, hotels.name AS hotel_name, hotels.location AS hotel_location"

func (r *bookingRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select(bookingWithHotel).
		Joins("LEFT JOIN hotels ON hotels.id = bookings.hotel_id")
}

func (r *bookingRepo) Create(ctx context.Context, b *models.Booking) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *bookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.joined(ctx).Order("bookings.id ASC").Find(&bookings).Error; err != nil {
		return nil, translate(err)
	}
	return bookings, nil
}

func (r *bookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.joined(ctx).Where("bookings.id = ?", id).First(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *bookingRepo) Update(ctx context.Context, id uint, u models.BookingUpdate) (*models.Booking, error) {
	// RowsAffected is 0 on MySQL when the value is unchanged, so existence is
	// confirmed by the read below rather than by the update.
	if cols := u.Columns(); len(cols) > 0 {
		err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(cols).Error
		if err != nil {
			return nil, translate(err)
		}
	}
	return r.FindByID(ctx, id)
}

// ---------------------------
// Users
// ---------------------------

type userRepo struct{ db *gorm.DB }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepo) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) Update(ctx context.Context, id uint, u models.UserUpdate) (*models.User, error) {
	var usr models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&usr, id).Error; err != nil {
			return err
		}
		if cols := u.Columns(); len(cols) > 0 {
			if err := tx.Model(&usr).Updates(cols).Error; err != nil {
				return err
			}
		}
		return tx.First(&usr, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &usr, nil
}

func (r *userRepo) Delete(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// ---------------------------
// Reviews
// ---------------------------

type reviewRepo struct{ db *gorm.DB }

func (r *reviewRepo) Create(ctx context.Context, rv *models.Review) error {
	return translate(r.db.WithContext(ctx).Create(rv).Error)
}

func (r *reviewRepo) FindByHotel(ctx context.Context, hotelID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err)
	}
	return reviews, nil
}

// ---------------------------
// Products
// ---------------------------

type productRepo struct {
	db        *gorm.DB
	uploadDir string
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *productRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, id uint, u models.ProductUpdate) (*models.Product, error) {
	var p models.Product
	var orphan string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		orphan = store.ReplacedImage(p.Image, u)
		if cols := u.Columns(); len(cols) > 0 {
			if err := tx.Model(&p).Updates(cols).Error; err != nil {
				return err
			}
		}
		return tx.First(&p, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	if err := store.RemoveUpload(r.uploadDir, orphan); err != nil {
		return &p, fmt.Errorf("remove replaced image: %w", err)
	}
	return &p, nil
}

// Delete removes the row, then the image file. Both finish before it returns.
func (r *productRepo) Delete(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	if err := store.RemoveUpload(r.uploadDir, p.Image); err != nil {
		return &p, fmt.Errorf("remove product image: %w", err)
	}
	return &p, nil
}
