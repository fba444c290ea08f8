package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HotelID   uint      `gorm:"column:hotel_id;index;not null" json:"hotel_id"`
	UserID    *uint     `gorm:"column:user_id;index" json:"user_id,omitempty"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
