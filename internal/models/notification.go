package models

import "time"

// Action tags carried by every notification payload.
const (
	ActionCreateCustomer       = "CreateCustomer"
	ActionProcessImage         = "ProcessImage"
	ActionProcessOrder         = "ProcessOrder"
	ActionProcessContract      = "ProcessContract"
	ActionPaymentProofUploaded = "PaymentProofUploaded"
)

// Notification payloads are flat JSON objects: entity fields plus Action and
// Timestamp. Field names are part of the wire format shared with the
// processing functions.

type CustomerCreated struct {
	CustomerId      string    `json:"CustomerId"`
	FirstName       string    `json:"FirstName"`
	LastName        string    `json:"LastName"`
	Username        string    `json:"Username"`
	Email           string    `json:"Email"`
	ShippingAddress string    `json:"ShippingAddress"`
	Action          string    `json:"Action"`
	Timestamp       time.Time `json:"Timestamp"`
}

type ImageUploaded struct {
	ProductId        string    `json:"ProductId"`
	ImageName        string    `json:"ImageName"`
	OriginalFileName string    `json:"OriginalFileName"`
	Action           string    `json:"Action"`
	Timestamp        time.Time `json:"Timestamp"`
}

type OrderPlaced struct {
	OrderId     string    `json:"OrderId"`
	CustomerId  string    `json:"CustomerId"`
	ProductId   string    `json:"ProductId"`
	Quantity    int       `json:"Quantity"`
	TotalAmount float64   `json:"TotalAmount"`
	Action      string    `json:"Action"`
	Timestamp   time.Time `json:"Timestamp"`
}

type ContractUploaded struct {
	FileName     string    `json:"FileName"`
	ContractType string    `json:"ContractType"`
	FileSize     int64     `json:"FileSize"`
	UploadedBy   string    `json:"UploadedBy"`
	Action       string    `json:"Action"`
	Timestamp    time.Time `json:"Timestamp"`
}

type PaymentProofUploaded struct {
	FileName       string    `json:"FileName"`
	BlobName       string    `json:"BlobName"`
	RelatedOrderId string    `json:"RelatedOrderId"`
	CustomerName   string    `json:"CustomerName"`
	Action         string    `json:"Action"`
	Timestamp      time.Time `json:"Timestamp"`
}
