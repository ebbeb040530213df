package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount" swaggertype:"string" example:"250"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []Item          `json:"items"`
}

// Item copies the product's name and price at purchase time; later catalog edits
// never reach it.
type Item struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price" swaggertype:"string" example:"100"`
	Quantity     int             `json:"quantity"`
}

func (it Item) Subtotal() decimal.Decimal {
	return it.ProductPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Total sums price × quantity over items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
