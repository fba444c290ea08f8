package models

import "time"

// Product is the secondary catalog resource. Image holds the filename of the
// uploaded picture inside the uploads directory; the product owns that file.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
	Image       *string
}

func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
}

func (u ProductUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Price != nil {
		cols["price"] = *u.Price
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Image != nil {
		cols["image"] = *u.Image
	}
	return cols
}
