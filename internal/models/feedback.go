package models

import "time"

type Feedback struct {
	ID uint `gorm:"primaryKey" json:"feedback_id"`

	OrderID    uint `gorm:"not null;uniqueIndex" json:"order_id"`
	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	ChefID     uint `gorm:"not null;index" json:"chef_id"`

	Rating  int    `gorm:"not null;check:chk_feedbacks_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
