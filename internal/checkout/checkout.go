// Package checkout turns the session cart into a hosted payment request and, on the
// gateway's success redirect, into a persisted order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/cart"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNothingToBuy = errors.New("no product in the cart is available")
	ErrGateway      = errors.New("payment gateway")
)

// LineItem is one distinct product submitted to the gateway.
type LineItem struct {
	ProductID  int64
	Name       string
	Currency   string
	UnitAmount int64 // minor currency units
	Quantity   int64
}

type SessionRequest struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
}

type Gateway interface {
	// CreateSession returns the URL of the hosted payment page.
	CreateSession(ctx context.Context, req SessionRequest) (string, error)
}

type Service struct {
	Products cart.Resolver
	Orders   order.Repository
	Gateway  Gateway
	Events   order.Publisher
	Metrics  *Metrics
	Currency string
}

// MinorUnits converts a major-unit price to integer minor units, truncating
// anything below one minor unit.
func MinorUnits(price decimal.Decimal) int64 {
	return price.Shift(2).Truncate(0).IntPart()
}

type resolvedLine struct {
	product  product.Product
	quantity int
}

// resolve groups the cart and drops products that no longer exist.
func (s *Service) resolve(ctx context.Context, c cart.Cart) ([]resolvedLine, error) {
	var out []resolvedLine
	for _, line := range c.Group() {
		p, err := s.Products.GetByID(ctx, line.ProductID)
		if errors.Is(err, product.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve product %d: %w", line.ProductID, err)
		}
		out = append(out, resolvedLine{product: *p, quantity: line.Quantity})
	}
	return out, nil
}

func (s *Service) BuildLineItems(ctx context.Context, c cart.Cart) ([]LineItem, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	lines, err := s.resolve(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNothingToBuy
	}
	items := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, LineItem{
			ProductID:  l.product.ID,
			Name:       l.product.Name,
			Currency:   s.Currency,
			UnitAmount: MinorUnits(l.product.Price),
			Quantity:   int64(l.quantity),
		})
	}
	return items, nil
}

// Start submits the cart to the gateway and returns the hosted payment URL.
// The cart is never modified here.
func (s *Service) Start(ctx context.Context, c cart.Cart, successURL, cancelURL string) (string, error) {
	items, err := s.BuildLineItems(ctx, c)
	switch {
	case errors.Is(err, ErrEmptyCart):
		s.Metrics.observe(outcomeEmptyCart)
		return "", err
	case errors.Is(err, ErrNothingToBuy):
		s.Metrics.observe(outcomeNothingToBuy)
		return "", err
	case err != nil:
		return "", err
	}

	url, err := s.Gateway.CreateSession(ctx, SessionRequest{
		LineItems:  items,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	})
	if err != nil {
		s.Metrics.observe(outcomeGatewayError)
		log.Printf("[checkout] gateway session failed: %v", err)
		return "", fmt.Errorf("%w: %w", ErrGateway, err)
	}
	s.Metrics.observe(outcomeRedirected)
	log.Printf("[checkout] gateway session created lines=%d", len(items))
	return url, nil
}

// Complete records the order for whatever the cart holds now. It returns a nil
// order when there is nothing to record: an empty cart (a revisit after the cart
// was cleared) or a cart whose products are all gone.
//
// Nothing ties this call to a specific payment; the success redirect is trusted as is.
func (s *Service) Complete(ctx context.Context, userID int64, c cart.Cart) (*order.Order, error) {
	if c.IsEmpty() {
		s.Metrics.observe(outcomeNoop)
		return nil, nil
	}
	lines, err := s.resolve(ctx, c)
	if err != nil {
		s.Metrics.observe(outcomePersistError)
		return nil, err
	}
	if len(lines) == 0 {
		s.Metrics.observe(outcomeNoop)
		return nil, nil
	}

	o := &order.Order{UserID: userID, Items: make([]order.Item, 0, len(lines))}
	for _, l := range lines {
		o.Items = append(o.Items, order.Item{
			ProductID:    l.product.ID,
			ProductName:  l.product.Name,
			ProductPrice: l.product.Price,
			Quantity:     l.quantity,
		})
	}
	o.TotalAmount = order.Total(o.Items)

	if err := s.Orders.Create(ctx, o); err != nil {
		s.Metrics.observe(outcomePersistError)
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.Metrics.observe(outcomeCompleted)
	log.Printf("[orders] order=%d user=%d items=%d total=%s", o.ID, o.UserID, len(o.Items), o.TotalAmount)

	if s.Events != nil {
		if err := s.Events.Publish(ctx, order.NewPlaced(o)); err != nil {
			log.Printf("[events] publish order=%d failed: %v", o.ID, err)
		}
	}
	return o, nil
}
