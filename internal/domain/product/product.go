package product

import (
	"context"
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrConcurrentUpdate is returned on commit when a staged product was
// changed by another writer after it was read.
var ErrConcurrentUpdate = errors.New("product modified concurrently")

// Product is a catalog item with its available inventory.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Quantity    int
	CategoryIDs []string
	// Version is the optimistic concurrency token checked on update.
	Version int64
}

// InCategory reports whether the product is tagged with the category.
func (p *Product) InCategory(categoryID string) bool {
	return slices.Contains(p.CategoryIDs, categoryID)
}

// Repository provides product lookups and deferred updates. Update only
// stages the change; it is persisted when the owning unit of work commits.
type Repository interface {
	FindAllByID(ctx context.Context, ids []string) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
}
