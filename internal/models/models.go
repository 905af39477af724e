package models

// All lists every table in migration order.
func All() []any {
	return []any{
		&Customer{},
		&HomeChef{},
		&Admin{},
		&DeliveryPerson{},
		&MenuItem{},
		&ServiceArea{},
		&Address{},
		&Order{},
		&OrderItem{},
		&OrderStatusLog{},
		&Feedback{},
		&AuditLog{},
	}
}
