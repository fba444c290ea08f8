package models

import (
	"time"

	"gorm.io/datatypes"
)

type Hotel struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Location      string         `gorm:"size:255;not null;index" json:"location"`
	Description   string         `gorm:"type:text" json:"description"`
	PricePerNight float64        `gorm:"column:price_per_night;not null" json:"price_per_night"`
	Rating        float64        `gorm:"column:rating;default:0" json:"rating"`
	ImageURL      string         `gorm:"column:image_url;size:512" json:"image_url"`
	Address       string         `gorm:"size:255" json:"address"`
	City          string         `gorm:"size:120" json:"city"`
	Country       string         `gorm:"size:120" json:"country"`
	Amenities     datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// HotelUpdate carries the fields of a partial hotel update. Nil means "keep".
type HotelUpdate struct {
	Name          *string
	Location      *string
	Description   *string
	PricePerNight *float64
	Rating        *float64
	ImageURL      *string
	Address       *string
	City          *string
	Country       *string
	Amenities     datatypes.JSON
}

func (u HotelUpdate) Apply(h *Hotel) {
	if u.Name != nil {
		h.Name = *u.Name
	}
	if u.Location != nil {
		h.Location = *u.Location
	}
	if u.Description != nil {
		h.Description = *u.Description
	}
	if u.PricePerNight != nil {
		h.PricePerNight = *u.PricePerNight
	}
	if u.Rating != nil {
		h.Rating = *u.Rating
	}
	if u.ImageURL != nil {
		h.ImageURL = *u.ImageURL
	}
	if u.Address != nil {
		h.Address = *u.Address
	}
	if u.City != nil {
		h.City = *u.City
	}
	if u.Country != nil {
		h.Country = *u.Country
	}
	if u.Amenities != nil {
		h.Amenities = u.Amenities
	}
}

// Columns maps the set fields to their column names for gorm's Updates.
func (u HotelUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Location != nil {
		cols["location"] = *u.Location
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.PricePerNight != nil {
		cols["price_per_night"] = *u.PricePerNight
	}
	if u.Rating != nil {
		cols["rating"] = *u.Rating
	}
	if u.ImageURL != nil {
		cols["image_url"] = *u.ImageURL
	}
	if u.Address != nil {
		cols["address"] = *u.Address
	}
	if u.City != nil {
		cols["city"] = *u.City
	}
	if u.Country != nil {
		cols["country"] = *u.Country
	}
	if u.Amenities != nil {
		cols["amenities"] = u.Amenities
	}
	return cols
}
