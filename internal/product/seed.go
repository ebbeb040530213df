package product

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
)

// DemoCatalog is inserted on first start when the catalog is empty.
var DemoCatalog = []Product{
	{
		Name:     "Sample Watch",
		Price:    decimal.NewFromInt(1500),
		ImageURL: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
	},
	{
		Name:     "Headphones",
		Price:    decimal.NewFromInt(2500),
		ImageURL: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
	},
}

// Seed inserts items only if the repository holds no products yet.
func Seed(ctx context.Context, repo Repository, items []Product) (int, error) {
	existing, err := repo.List(ctx, "")
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i := range items {
		p := items[i]
		if err := repo.Create(ctx, &p); err != nil {
			return i, err
		}
		log.Printf("[db] seeded product id=%d name=%q", p.ID, p.Name)
	}
	return len(items), nil
}
