package shipping

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a shipping method does not exist.
var ErrNotFound = errors.New("shipping method not found")

// Method is a delivery option with a flat price.
type Method struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Repository provides shipping method lookups.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Method, error)
}
