package product

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"1500.00"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Form is the seller-submitted product form before validation.
// swagger:model ProductForm
type Form struct {
	Name        string `form:"name"        json:"name"        example:"Sample Watch"`
	Price       string `form:"price"       json:"price"       example:"1500.00"`
	ImageURL    string `form:"image_url"   json:"image_url"   example:"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500"`
	Description string `form:"description" json:"description" example:"Steel case, leather strap"`
}

// Product validates the form and builds the product it describes.
func (f Form) Product() (*Product, error) {
	name, err := ParseName(f.Name)
	if err != nil {
		return nil, err
	}
	price, err := ParsePrice(f.Price)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(f.ImageURL) > MaxImageURLLen {
		return nil, ErrImageURLTooLong
	}
	return &Product{
		Name:        name,
		Price:       price,
		ImageURL:    f.ImageURL,
		Description: f.Description,
	}, nil
}
