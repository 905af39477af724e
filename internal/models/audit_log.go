package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorRole string `gorm:"size:20;not null;index" json:"actor_role"`
	ActorID   *uint  `json:"actor_id"`
	Action    string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50;index" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
