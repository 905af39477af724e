package dto

import "time"

type ChefCardDTO struct {
	ChefID        uint     `json:"chef_id"`
	BusinessName  string   `json:"business_name"`
	Description   string   `json:"description"`
	ProfileImage  string   `json:"profile_image"`
	AverageRating float64  `json:"average_rating"`
	TotalOrders   int64    `json:"total_orders"`
	DeliveryFee   *float64 `json:"delivery_fee,omitempty"`
}

type PopularItemDTO struct {
	ItemID       uint    `json:"item_id"`
	Name         string  `json:"name"`
	BasePrice    float64 `json:"base_price"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	ChefID       uint    `json:"chef_id"`
	BusinessName string  `json:"business_name"`
	OrderCount   int64   `json:"order_count"`
}

type FeedbackViewDTO struct {
	FeedbackID        uint      `json:"feedback_id"`
	OrderID           uint      `json:"order_id"`
	ChefID            uint      `json:"chef_id"`
	CustomerID        uint      `json:"customer_id"`
	Rating            int       `json:"rating"`
	Comment           string    `json:"comment"`
	CreatedAt         time.Time `json:"created_at"`
	BusinessName      string    `json:"business_name"`
	CustomerFirstName string    `json:"customer_first_name"`
	CustomerLastName  string    `json:"customer_last_name"`
	GrandTotal        float64   `json:"grand_total"`
}

type FavoriteChefDTO struct {
	ChefID        uint    `json:"chef_id"`
	BusinessName  string  `json:"business_name"`
	AverageRating float64 `json:"average_rating"`
	OrderCount    int64   `json:"order_count"`
}
