package models

type Product struct {
	Id             string  `json:"id"              form:"id"`
	ProductName    string  `json:"product_name"    form:"product_name"    validate:"required"`
	Description    string  `json:"description"     form:"description"     validate:"required"`
	Price          float64 `json:"price"           form:"price"           validate:"gt=0"`
	StockAvailable int     `json:"stock_available" form:"stock_available" validate:"gte=0"`
	ImageUrl       string  `json:"image_url,omitempty" form:"-"`
}

// Image is an uploaded file attached to a product write. A nil or empty image
// leaves the stored image reference untouched.
type Image struct {
	FileName    string
	ContentType string
	Data        []byte
}

func (i *Image) Empty() bool {
	return i == nil || len(i.Data) == 0
}
