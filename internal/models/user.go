package models

import "time"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCustomer     Role = "customer"
	RoleProfessional Role = "professional"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleProfessional:
		return true
	}
	return false
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:100" json:"name"`
	Address      string `gorm:"size:255" json:"address"`
	Pincode      string `gorm:"size:10" json:"pincode"`
	Role         Role   `gorm:"size:20;not null" json:"role"`
	IsBlocked    bool   `gorm:"default:false" json:"is_blocked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
