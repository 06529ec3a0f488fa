package order

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/xenking/kart-pricing/internal/domain/coupon"
)

// LineItemDraft is a customer's raw request for a product quantity.
type LineItemDraft struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ReservedProduct is the quantity of a product held for an in-flight order.
type ReservedProduct struct {
	ProductID string
	Quantity  int
}

// LineItem is the priced, quantity-bound record of one product in an order.
// It is a value: construct a new one instead of modifying fields.
type LineItem struct {
	ProductID      string
	Quantity       int
	BasePrice      decimal.Decimal
	PurchasedPrice decimal.Decimal
	CategoryIDs    []string
}

// Total returns PurchasedPrice × Quantity.
func (li LineItem) Total() decimal.Decimal {
	return li.PurchasedPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Equal compares every field, using decimal equality for prices.
func (li LineItem) Equal(other LineItem) bool {
	return li.ProductID == other.ProductID &&
		li.Quantity == other.Quantity &&
		li.BasePrice.Equal(other.BasePrice) &&
		li.PurchasedPrice.Equal(other.PurchasedPrice) &&
		slices.Equal(li.CategoryIDs, other.CategoryIDs)
}

func couponLines(items []LineItem) []coupon.Line {
	lines := make([]coupon.Line, len(items))
	for i, li := range items {
		lines[i] = coupon.Line{ProductID: li.ProductID, CategoryIDs: li.CategoryIDs}
	}
	return lines
}
