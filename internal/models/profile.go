package models

import "time"

// CustomerProfile anchors the requests filed by a customer user. It carries no
// attributes of its own beyond the user link.
type CustomerProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfessionalProfile is created unapproved at signup. The owner cannot work
// (or even log in) until an admin flips IsApproved.
type ProfessionalProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE;" json:"service"`

	Experience  string `gorm:"size:64" json:"experience"`
	Description string `gorm:"size:255" json:"description"`
	IsApproved  bool   `gorm:"default:false" json:"is_approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
