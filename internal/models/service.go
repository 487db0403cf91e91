package models

import "time"

// Service is a catalog entry. Name doubles as the human key used in routing
// and professional signup.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Price        float64 `gorm:"not null" json:"price"`
	TimeRequired string  `gorm:"size:64" json:"time_required"`
	Description  string  `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
