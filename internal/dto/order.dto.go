package dto

import "time"

type OrderListDTO struct {
	OrderID          uint      `json:"order_id"`
	CustomerID       uint      `json:"customer_id"`
	ChefID           uint      `json:"chef_id"`
	DeliveryPersonID *uint     `json:"delivery_person_id"`
	Status           string    `json:"status"`
	Subtotal         float64   `json:"subtotal"`
	DeliveryFee      float64   `json:"delivery_fee"`
	GrandTotal       float64   `json:"grand_total"`
	OrderTime        time.Time `json:"order_time"`

	BusinessName      string `json:"business_name"`
	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	CustomerPhone     string `json:"customer_phone"`

	Street  string `json:"street"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`

	ItemCount int64 `json:"item_count"`
}

type OrderStatsDTO struct {
	TotalOrders     int64   `json:"total_orders"`
	ActiveOrders    int64   `json:"active_orders"`
	DeliveredOrders int64   `json:"delivered_orders"`
	CancelledOrders int64   `json:"cancelled_orders"`
	TotalSpent      float64 `json:"total_spent"`
}

type EarningsDTO struct {
	TotalEarnings   float64 `json:"total_earnings"`
	TodayEarnings   float64 `json:"today_earnings"`
	WeekEarnings    float64 `json:"week_earnings"`
	MonthEarnings   float64 `json:"month_earnings"`
	DeliveredOrders int64   `json:"delivered_orders"`
}

type CourierStatsDTO struct {
	TotalDeliveries     int64   `json:"total_deliveries"`
	CompletedDeliveries int64   `json:"completed_deliveries"`
	PendingDeliveries   int64   `json:"pending_deliveries"`
	TotalAmount         float64 `json:"total_amount"`
	AverageRating       float64 `json:"average_rating"`
}
