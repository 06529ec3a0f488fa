package sale

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/kart-pricing/internal/clock"
	"github.com/xenking/kart-pricing/internal/domain/product"
)

// Resolver finds the sales that currently apply to products.
type Resolver struct {
	repo Repository
	now  func() time.Time
}

// NewResolver creates a Resolver backed by the given Repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo, now: time.Now}
}

// ApplicableSales fetches candidate sales in one call and returns, for each
// product id, the sales whose window contains now and whose scope covers
// the product. Products without a sale are absent from the result.
func (r *Resolver) ApplicableSales(ctx context.Context, products []*product.Product) (map[string][]Sale, error) {
	if len(products) == 0 {
		return map[string][]Sale{}, nil
	}

	productIDs := make([]string, 0, len(products))
	categories := make(Set)
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		for _, c := range p.CategoryIDs {
			categories[c] = struct{}{}
		}
	}
	categoryIDs := make([]string, 0, len(categories))
	for c := range categories {
		categoryIDs = append(categoryIDs, c)
	}

	candidates, err := r.repo.FindActiveSalesForProducts(ctx, productIDs, categoryIDs)
	if err != nil {
		return nil, errors.Wrap(err, "find active sales")
	}

	now := clock.From(ctx, r.now)
	result := make(map[string][]Sale, len(products))
	for _, p := range products {
		for _, s := range candidates {
			if s.Discount.IsValidToDate(now) && s.Covers(p) {
				result[p.ID] = append(result[p.ID], s)
			}
		}
	}
	return result, nil
}
