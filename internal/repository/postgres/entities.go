package postgres

import (
	"time"

	"retail-demo/internal/models"
)

const (
	PartitionCustomer = "Customer"
	PartitionProduct  = "Product"
	PartitionOrder    = "Order"
)

type CustomerEntity struct {
	TableEntity
	FirstName       string `gorm:"column:first_name"`
	LastName        string `gorm:"column:last_name"`
	Username        string `gorm:"column:username"`
	Email           string `gorm:"column:email"`
	ShippingAddress string `gorm:"column:shipping_address"`
}

func (e *CustomerEntity) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"first_name":       e.FirstName,
		"last_name":        e.LastName,
		"username":         e.Username,
		"email":            e.Email,
		"shipping_address": e.ShippingAddress,
	}
}

func (e *CustomerEntity) overlay(c models.Customer) {
	e.FirstName = c.FirstName
	e.LastName = c.LastName
	e.Username = c.Username
	e.Email = c.Email
	e.ShippingAddress = c.ShippingAddress
}

func (e *CustomerEntity) model() models.Customer {
	return models.Customer{
		Id:              e.RowKey,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Username:        e.Username,
		Email:           e.Email,
		ShippingAddress: e.ShippingAddress,
	}
}

type ProductEntity struct {
	TableEntity
	ProductName    string  `gorm:"column:product_name"`
	Description    string  `gorm:"column:description"`
	Price          float64 `gorm:"column:price"`
	StockAvailable int     `gorm:"column:stock_available"`
	ImageUrl       string  `gorm:"column:image_url"`
}

func (e *ProductEntity) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"product_name":    e.ProductName,
		"description":     e.Description,
		"price":           e.Price,
		"stock_available": e.StockAvailable,
		"image_url":       e.ImageUrl,
	}
}

// overlay copies the editable fields. The image reference is only replaced
// when a new one is given.
func (e *ProductEntity) overlay(p models.Product) {
	e.ProductName = p.ProductName
	e.Description = p.Description
	e.Price = p.Price
	e.StockAvailable = p.StockAvailable
	if p.ImageUrl != "" {
		e.ImageUrl = p.ImageUrl
	}
}

func (e *ProductEntity) model() models.Product {
	return models.Product{
		Id:             e.RowKey,
		ProductName:    e.ProductName,
		Description:    e.Description,
		Price:          e.Price,
		StockAvailable: e.StockAvailable,
		ImageUrl:       e.ImageUrl,
	}
}

type OrderEntity struct {
	TableEntity
	CustomerId      string    `gorm:"column:customer_id"`
	ProductId       string    `gorm:"column:product_id"`
	Quantity        int       `gorm:"column:quantity"`
	OrderDate       time.Time `gorm:"column:order_date"`
	TotalAmount     float64   `gorm:"column:total_amount"`
	Status          string    `gorm:"column:status"`
	ShippingAddress string    `gorm:"column:shipping_address"`
}

func (e *OrderEntity) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"customer_id":      e.CustomerId,
		"product_id":       e.ProductId,
		"quantity":         e.Quantity,
		"order_date":       e.OrderDate,
		"total_amount":     e.TotalAmount,
		"status":           e.Status,
		"shipping_address": e.ShippingAddress,
	}
}

func (e *OrderEntity) overlay(o models.Order) {
	e.CustomerId = o.CustomerId
	e.ProductId = o.ProductId
	e.Quantity = o.Quantity
	e.OrderDate = o.OrderDate.UTC()
	e.TotalAmount = o.TotalAmount
	e.Status = o.Status
	e.ShippingAddress = o.ShippingAddress
}

func (e *OrderEntity) model() models.Order {
	return models.Order{
		Id:              e.RowKey,
		CustomerId:      e.CustomerId,
		ProductId:       e.ProductId,
		Quantity:        e.Quantity,
		OrderDate:       e.OrderDate.UTC(),
		TotalAmount:     e.TotalAmount,
		Status:          e.Status,
		ShippingAddress: e.ShippingAddress,
	}
}
