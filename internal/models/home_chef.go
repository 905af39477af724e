package models

import "time"

type HomeChef struct {
	ID uint `gorm:"primaryKey" json:"chef_id"`

	BusinessName string `gorm:"size:150;not null;index" json:"business_name"`
	ContactName  string `gorm:"size:150" json:"contact_name"`
	Email        string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"column:phone_number;size:20" json:"phone_number"`
	Description  string `gorm:"type:text" json:"description"`
	ProfileImage string `gorm:"size:255" json:"profile_image"`

	AverageRating float64 `gorm:"type:decimal(3,2);not null" json:"average_rating"`

	// Only an admin flips this.
	IsActive bool `gorm:"not null;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
