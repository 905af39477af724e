package models

import "time"

type Admin struct {
	ID uint `gorm:"primaryKey" json:"admin_id"`

	Name         string `gorm:"size:100" json:"name"`
	Email        string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
