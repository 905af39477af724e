package models

import "time"

type DeliveryPerson struct {
	ID uint `gorm:"primaryKey" json:"driver_id"`

	FirstName     string `gorm:"size:100;not null" json:"first_name"`
	LastName      string `gorm:"size:100" json:"last_name"`
	Phone         string `gorm:"column:phone_number;size:10;uniqueIndex;not null" json:"phone_number"`
	Email         string `gorm:"size:150" json:"email"`
	VehicleType   string `gorm:"size:50" json:"vehicle_type"`
	VehicleNumber string `gorm:"size:20" json:"vehicle_number"`

	// Nil for accounts provisioned by an admin without a password.
	PasswordHash *string `gorm:"size:255" json:"-"`

	Status string `gorm:"size:20;not null" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DeliveryPerson) TableName() string {
	return "delivery_personnel"
}
