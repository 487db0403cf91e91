package models

import "time"

type ServiceRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE;" json:"service"`

	CustomerID uint            `gorm:"not null" json:"customer_id"`
	Customer   CustomerProfile `gorm:"constraint:OnUpdate:CASCADE;" json:"customer"`

	ProfessionalID *uint                `json:"professional_id"`
	Professional   *ProfessionalProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional,omitempty"`

	DateOfRequest    time.Time  `json:"date_of_request"`
	DateOfCompletion *time.Time `json:"date_of_completion"`

	Status  string `gorm:"size:20;default:'requested'" json:"status"`
	Remarks string `gorm:"size:255" json:"remarks"`

	// Set only when the request is closed.
	Rating *int   `json:"rating"`
	Review string `gorm:"size:255" json:"review"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
