// Package cart holds the session cart: an ordered sequence of product ids where
// repeated ids stand for quantity.
package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/product"
)

type Cart []int64

// Add appends id without checking that the product exists.
func (c *Cart) Add(id int64) {
	*c = append(*c, id)
}

func (c *Cart) Clear() {
	*c = nil
}

func (c Cart) IsEmpty() bool { return len(c) == 0 }

// Line is one distinct product id with the number of times it occurs in the cart.
type Line struct {
	ProductID int64
	Quantity  int
}

// Group counts occurrences per product id, keeping the order in which ids first appear.
func (c Cart) Group() []Line {
	idx := make(map[int64]int, len(c))
	var lines []Line
	for _, id := range c {
		if i, ok := idx[id]; ok {
			lines[i].Quantity++
			continue
		}
		idx[id] = len(lines)
		lines = append(lines, Line{ProductID: id, Quantity: 1})
	}
	return lines
}

type Resolver interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}

type View struct {
	Items []product.Product `json:"items"`
	Total decimal.Decimal   `json:"total" swaggertype:"string" example:"4000"`
}

// Resolve looks up every id in cart order. Ids whose product no longer exists are
// skipped; any other lookup failure is returned.
func (c Cart) Resolve(ctx context.Context, r Resolver) (*View, error) {
	v := &View{Items: []product.Product{}, Total: decimal.Zero}
	for _, id := range c {
		p, err := r.GetByID(ctx, id)
		if errors.Is(err, product.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		v.Items = append(v.Items, *p)
		v.Total = v.Total.Add(p.Price)
	}
	return v, nil
}
