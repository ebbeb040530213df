package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNoItems = errors.New("order has no items")

type Repository interface {
	// Create stores the order and all its items atomically, filling in generated ids.
	Create(ctx context.Context, o *Order) error
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	GetItems(ctx context.Context, orderID int64) ([]Item, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
    INSERT INTO orders (user_id, total_amount, created_at)
    VALUES ($1,$2,NOW())
    RETURNING id, created_at
  `, o.UserID, o.TotalAmount.String()).Scan(&o.ID, &o.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if err := tx.QueryRow(ctx, `
      INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity)
      VALUES ($1,$2,$3,$4,$5)
      RETURNING id
    `, o.ID, it.ProductID, it.ProductName, it.ProductPrice.String(), it.Quantity).Scan(&it.ID); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ListByUser returns the user's orders newest first, each with its items.
func (r *PGRepo) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, user_id, total_amount::text, created_at
    FROM orders WHERE user_id=$1
    ORDER BY created_at DESC, id DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	out := []Order{}
	for rows.Next() {
		var (
			o     Order
			total string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &total, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
			rows.Close()
			return nil, fmt.Errorf("order %d: bad total %q: %w", o.ID, total, err)
		}
		out = append(out, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.GetItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PGRepo) GetItems(ctx context.Context, orderID int64) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, product_id, product_name, product_price::text, quantity
    FROM order_items
    WHERE order_id = $1
    ORDER BY id
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &price, &it.Quantity); err != nil {
			return nil, err
		}
		if it.ProductPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("order item %d: bad price %q: %w", it.ID, price, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
