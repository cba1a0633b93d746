package models

import (
	"time"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusCompleted  = "Completed"
)

// Order references a customer and a product by id only; neither reference is
// checked against the stores.
type Order struct {
	Id              string    `json:"id"`
	CustomerId      string    `json:"customer_id"      validate:"required"`
	ProductId       string    `json:"product_id"`
	Quantity        int       `json:"quantity"         validate:"gte=1"`
	OrderDate       time.Time `json:"order_date"`
	TotalAmount     float64   `json:"total_amount"     validate:"gte=0"`
	Status          string    `json:"status"`
	ShippingAddress string    `json:"shipping_address"`
}
