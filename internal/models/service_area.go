package models

import "time"

// ServiceArea decides which chefs a customer in a pincode can order from,
// and at what delivery fee.
type ServiceArea struct {
	ID     uint `gorm:"primaryKey" json:"area_id"`
	ChefID uint `gorm:"not null;uniqueIndex:idx_service_area_chef_pincode" json:"chef_id"`

	Pincode     string  `gorm:"size:10;not null;uniqueIndex:idx_service_area_chef_pincode;index:idx_service_area_pincode" json:"pincode"`
	DeliveryFee float64 `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`

	CreatedAt time.Time `json:"created_at"`
}
