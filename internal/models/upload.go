package models

type PaymentProof struct {
	FileName       string `json:"file_name"        validate:"required"`
	RelatedOrderId string `json:"related_order_id" form:"related_order_id"`
	CustomerName   string `json:"customer_name"    form:"customer_name"`
	Content        []byte `json:"-"                validate:"required,min=1"`
}
