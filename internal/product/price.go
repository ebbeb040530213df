package product

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Limits of the products table columns.
const (
	MaxNameLen     = 100
	MaxImageURLLen = 500
)

// MaxPrice is the largest value NUMERIC(12,2) holds.
var MaxPrice = decimal.RequireFromString("9999999999.99")

var (
	ErrInvalidPrice    = errors.New("invalid price")
	ErrNameRequired    = errors.New("product name is required")
	ErrNameTooLong     = errors.New("product name is too long")
	ErrImageURLTooLong = errors.New("image url is too long")
)

// ParsePrice accepts a non-negative decimal number up to MaxPrice and rounds it to cents.
func ParsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	d = d.Round(2)
	if d.GreaterThan(MaxPrice) {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

func ParseName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return "", ErrNameTooLong
	}
	return name, nil
}
