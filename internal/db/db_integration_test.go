package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MikeMC777/storefront/internal/db"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/user"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("postgres container tests skipped in -short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := db.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(pool))
	require.NoError(t, db.Migrate(pool), "second run is a no-op")
	return pool
}

func TestRepositories_AgainstPostgres(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	products := product.NewPGRepo(pool)
	users := user.NewPGRepo(pool)
	orders := order.NewPGRepo(pool)

	t.Run("seed only fills an empty catalog", func(t *testing.T) {
		n, err := product.Seed(ctx, products, product.DemoCatalog)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = product.Seed(ctx, products, product.DemoCatalog)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("product crud and case-sensitive search", func(t *testing.T) {
		p := &product.Product{Name: "Leather Strap", Price: decimal.RequireFromString("19.99")}
		require.NoError(t, products.Create(ctx, p))
		require.NotZero(t, p.ID)

		got, err := products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "19.99", got.Price.String())

		found, err := products.List(ctx, "Strap")
		require.NoError(t, err)
		require.Len(t, found, 1)
		none, err := products.List(ctx, "strap")
		require.NoError(t, err)
		assert.Empty(t, none)

		p.Price = decimal.NewFromInt(25)
		require.NoError(t, products.Update(ctx, p))
		got, _ = products.GetByID(ctx, p.ID)
		assert.Equal(t, "25", got.Price.String())

		ok, err := products.Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		_, err = products.GetByID(ctx, p.ID)
		assert.ErrorIs(t, err, product.ErrNotFound)
		assert.ErrorIs(t, products.Update(ctx, p), product.ErrNotFound)
	})

	t.Run("unique usernames", func(t *testing.T) {
		u := &user.User{Username: "alice", PasswordHash: "h", Role: user.RoleSeller}
		require.NoError(t, users.Create(ctx, u))
		err := users.Create(ctx, &user.User{Username: "alice", PasswordHash: "h2", Role: user.RoleBuyer})
		assert.ErrorIs(t, err, user.ErrAlreadyExist)

		got, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.RoleSeller, got.Role)
		_, err = users.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("order graph is atomic and snapshotted", func(t *testing.T) {
		buyer := &user.User{Username: "bob", PasswordHash: "h", Role: user.RoleBuyer}
		require.NoError(t, users.Create(ctx, buyer))

		watch := &product.Product{Name: "Watch", Price: decimal.NewFromInt(100)}
		require.NoError(t, products.Create(ctx, watch))

		items := []order.Item{
			{ProductID: watch.ID, ProductName: watch.Name, ProductPrice: watch.Price, Quantity: 2},
			{ProductID: 12345, ProductName: "Cable", ProductPrice: decimal.NewFromInt(50), Quantity: 1},
		}
		o := &order.Order{UserID: buyer.ID, Items: items, TotalAmount: order.Total(items)}
		require.NoError(t, orders.Create(ctx, o))
		assert.NotZero(t, o.ID)

		bad := []order.Item{
			{ProductID: watch.ID, ProductName: watch.Name, ProductPrice: watch.Price, Quantity: 1},
			{ProductID: watch.ID, ProductName: watch.Name, ProductPrice: watch.Price, Quantity: 0},
		}
		err := orders.Create(ctx, &order.Order{UserID: buyer.ID, Items: bad, TotalAmount: order.Total(bad)})
		require.Error(t, err, "quantity check violation must abort the whole order")

		watch.Price = decimal.NewFromInt(999)
		require.NoError(t, products.Update(ctx, watch))

		list, err := orders.ListByUser(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, list, 1, "failed order left no rows behind")
		assert.Equal(t, "250", list[0].TotalAmount.String())
		require.Len(t, list[0].Items, 2)
		assert.Equal(t, "100", list[0].Items[0].ProductPrice.String())
		assert.Equal(t, 2, list[0].Items[0].Quantity)
	})
}
