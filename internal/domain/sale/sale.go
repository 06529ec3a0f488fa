package sale

import (
	"context"

	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/domain/product"
)

// Set is a set of identifiers.
type Set map[string]struct{}

// NewSet builds a Set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// HasAny reports whether any of ids is in the set.
func (s Set) HasAny(ids []string) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Sale is an automatically applied discount scoped to products and
// categories, with explicit product exclusions.
type Sale struct {
	ID               string
	Discount         discount.Discount
	Products         Set
	Categories       Set
	ExcludedProducts Set
}

// New validates and returns a Sale. A sale must target at least one
// product or category.
func New(id string, d discount.Discount, products, categories, excluded Set) (Sale, error) {
	if len(products) == 0 && len(categories) == 0 {
		return Sale{}, &discount.ValidationError{
			Field:  "sale scope",
			Reason: "at least one product or category is required",
		}
	}
	return Sale{
		ID:               id,
		Discount:         d,
		Products:         products,
		Categories:       categories,
		ExcludedProducts: excluded,
	}, nil
}

// Covers reports whether the sale targets the product, ignoring the
// discount window.
func (s Sale) Covers(p *product.Product) bool {
	if s.ExcludedProducts.Has(p.ID) {
		return false
	}
	return s.Products.Has(p.ID) || s.Categories.HasAny(p.CategoryIDs)
}

// Repository provides read access to sales.
type Repository interface {
	// FindActiveSalesForProducts returns sales that reference any of the
	// given products or categories. Callers still filter by window and
	// exclusions.
	FindActiveSalesForProducts(ctx context.Context, productIDs, categoryIDs []string) ([]Sale, error)
}
