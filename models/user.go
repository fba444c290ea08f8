package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name;size:100" json:"first_name"`
	LastName  string    `gorm:"column:last_name;size:100" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Phone     string    `gorm:"size:32" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is what clients get to see of an account.
type PublicUser struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

type UserUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Password  *string
}

func (u UserUpdate) Apply(usr *User) {
	if u.FirstName != nil {
		usr.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		usr.LastName = *u.LastName
	}
	if u.Phone != nil {
		usr.Phone = *u.Phone
	}
	if u.Password != nil {
		usr.Password = *u.Password
	}
}

func (u UserUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.FirstName != nil {
		cols["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		cols["last_name"] = *u.LastName
	}
	if u.Phone != nil {
		cols["phone"] = *u.Phone
	}
	if u.Password != nil {
		cols["password"] = *u.Password
	}
	return cols
}
