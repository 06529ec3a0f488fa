package order

import (
	"context"
	"slices"

	"github.com/go-faster/errors"

	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/domain/product"
	"github.com/xenking/kart-pricing/internal/domain/sale"
)

// SaleResolver finds the sales applicable to products.
type SaleResolver interface {
	ApplicableSales(ctx context.Context, products []*product.Product) (map[string][]sale.Sale, error)
}

// Assembler turns drafts into priced, inventory-backed line items.
type Assembler struct {
	reserver *InventoryReserver
	sales    SaleResolver
}

// NewAssembler creates an Assembler.
func NewAssembler(reserver *InventoryReserver, sales SaleResolver) *Assembler {
	return &Assembler{reserver: reserver, sales: sales}
}

// Assemble reserves inventory for every draft, prices each product with its
// active sales and returns one LineItem per draft. Nothing is persisted; a
// failure at any step returns no line items.
func (a *Assembler) Assemble(ctx context.Context, drafts []LineItemDraft) ([]LineItem, error) {
	res, err := a.reserver.Reserve(ctx, drafts)
	if err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(res.Products))
	for _, item := range res.Items {
		if p := res.Products[item.ProductID]; !slices.Contains(products, p) {
			products = append(products, p)
		}
	}

	sales, err := a.sales.ApplicableSales(ctx, products)
	if err != nil {
		return nil, errors.Wrap(err, "resolve sales")
	}

	prices := make(map[string]LineItem, len(products))
	for _, p := range products {
		discounts := make([]discount.Discount, 0, len(sales[p.ID]))
		for _, s := range sales[p.ID] {
			discounts = append(discounts, s.Discount)
		}
		prices[p.ID] = LineItem{
			ProductID:      p.ID,
			BasePrice:      p.Price,
			PurchasedPrice: discount.Apply(p.Price, discounts),
			CategoryIDs:    p.CategoryIDs,
		}
	}

	items := make([]LineItem, len(res.Items))
	for i, reserved := range res.Items {
		li := prices[reserved.ProductID]
		li.Quantity = reserved.Quantity
		items[i] = li
	}
	return items, nil
}
