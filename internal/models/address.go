package models

import (
	"time"

	"gorm.io/gorm"
)

type OwnerKind string

const (
	OwnerCustomer OwnerKind = "Customer"
	OwnerHomeChef OwnerKind = "HomeChef"
)

// OwnerRef identifies whoever an address belongs to.
type OwnerRef struct {
	Kind OwnerKind
	ID   uint
}

func CustomerOwner(id uint) OwnerRef { return OwnerRef{Kind: OwnerCustomer, ID: id} }

// Scope restricts a query on addresses to the owner.
func (o OwnerRef) Scope(db *gorm.DB) *gorm.DB {
	return db.Where("entity_type = ? AND entity_id = ?", o.Kind, o.ID)
}

type Address struct {
	ID uint `gorm:"primaryKey" json:"address_id"`

	OwnerType OwnerKind `gorm:"column:entity_type;size:20;not null;index:idx_address_owner" json:"entity_type"`
	OwnerID   uint      `gorm:"column:entity_id;not null;index:idx_address_owner" json:"entity_id"`

	Label     string   `gorm:"size:50" json:"label"`
	HouseNo   string   `gorm:"size:50" json:"house_no"`
	Street    string   `gorm:"size:255;not null" json:"street"`
	City      string   `gorm:"size:100;not null" json:"city"`
	Pincode   string   `gorm:"size:10;not null;index" json:"pincode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Address) SetOwner(o OwnerRef) {
	a.OwnerType = o.Kind
	a.OwnerID = o.ID
}
