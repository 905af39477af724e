package models

import "time"

type MenuItem struct {
	ID     uint `gorm:"primaryKey" json:"item_id"`
	ChefID uint `gorm:"not null;index" json:"chef_id"`

	Name        string  `gorm:"size:150;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:50" json:"category"`
	BasePrice   float64 `gorm:"type:decimal(10,2);not null" json:"base_price"`
	ImageURL    string  `gorm:"size:255" json:"image_url"`
	IsVeg       bool    `gorm:"not null" json:"is_veg"`
	IsAvailable bool    `gorm:"not null;index" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
