package models

import "time"

type Order struct {
	ID uint `gorm:"primaryKey" json:"order_id"`

	CustomerID        uint  `gorm:"not null;index" json:"customer_id"`
	ChefID            uint  `gorm:"not null;index" json:"chef_id"`
	DeliveryAddressID uint  `gorm:"not null" json:"delivery_address_id"`
	DeliveryPersonID  *uint `gorm:"index" json:"delivery_person_id"`

	Subtotal    float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFee float64 `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	GrandTotal  float64 `gorm:"type:decimal(10,2);not null" json:"grand_total"`

	Status              string `gorm:"size:20;not null;index" json:"status"`
	SpecialInstructions string `gorm:"size:255" json:"special_instructions"`

	OrderTime   time.Time  `gorm:"not null;index" json:"order_time"`
	AssignedAt  *time.Time `json:"assigned_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"order_item_id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	ItemID  uint `gorm:"not null;index" json:"item_id"`

	Name                string  `gorm:"size:150" json:"name"`
	Quantity            int     `gorm:"not null" json:"quantity"`
	UnitPriceAtPurchase float64 `gorm:"type:decimal(10,2);not null" json:"unit_price_at_purchase"`
}

func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPriceAtPurchase
}

// OrderStatusLog is appended in the same transaction as every status change.
type OrderStatusLog struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`

	FromStatus string `gorm:"size:20" json:"from_status"`
	ToStatus   string `gorm:"size:20;not null" json:"to_status"`
	ActorRole  string `gorm:"size:20;not null" json:"actor_role"`
	ActorID    uint   `json:"actor_id"`

	CreatedAt time.Time `json:"created_at"`
}
