package models

type Customer struct {
	Id              string `json:"id"               form:"id"`
	FirstName       string `json:"first_name"       form:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        form:"last_name"        validate:"required"`
	Username        string `json:"username"         form:"username"         validate:"required"`
	Email           string `json:"email"            form:"email"            validate:"required,email"`
	ShippingAddress string `json:"shipping_address" form:"shipping_address"`
}
