package models

import (
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HotelID        uint          `gorm:"column:hotel_id;index;not null" json:"hotel_id"`
	GuestName      string        `gorm:"column:guest_name;size:255;not null" json:"guest_name"`
	GuestEmail     string        `gorm:"column:guest_email;size:255;not null" json:"guest_email"`
	GuestPhone     string        `gorm:"column:guest_phone;size:32;not null" json:"guest_phone"`
	CheckInDate    time.Time     `gorm:"column:check_in_date;type:date;not null" json:"check_in_date"`
	CheckOutDate   time.Time     `gorm:"column:check_out_date;type:date;not null" json:"check_out_date"`
	NumberOfGuests int           `gorm:"column:number_of_guests;not null" json:"number_of_guests"`
	Nights         int           `gorm:"column:nights" json:"nights"`
	TotalPrice     float64       `gorm:"column:total_price;not null" json:"total_price"`
	Status         BookingStatus `gorm:"column:status;type:varchar(20);not null;default:'confirmed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// filled from the hotels join on reads
	HotelName     string `gorm:"->;-:migration;column:hotel_name" json:"hotel_name,omitempty"`
	HotelLocation string `gorm:"->;-:migration;column:hotel_location" json:"hotel_location,omitempty"`
}

type BookingUpdate struct {
	Status *BookingStatus
}

func (u BookingUpdate) Apply(b *Booking) {
	if u.Status != nil {
		b.Status = *u.Status
	}
}

func (u BookingUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	return cols
}
