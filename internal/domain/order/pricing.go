package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/shipping"
)

// CouponApplier applies coupon discounts to a running product total.
type CouponApplier interface {
	Apply(ctx context.Context, lines []coupon.Line, couponIDs []string, total decimal.Decimal) (decimal.Decimal, error)
}

// Pricing is the breakdown of an order total.
type Pricing struct {
	// ProductsTotal is the sum of line totals after sales.
	ProductsTotal decimal.Decimal
	// DiscountedTotal is ProductsTotal after coupons.
	DiscountedTotal decimal.Decimal
	ShippingPrice   decimal.Decimal
	Total           decimal.Decimal
}

// Discounts returns the amount taken off by coupons.
func (p *Pricing) Discounts() decimal.Decimal {
	return p.ProductsTotal.Sub(p.DiscountedTotal)
}

// PricingService computes order totals from line items, shipping and coupons.
type PricingService struct {
	shipping shipping.Repository
	coupons  CouponApplier
}

// NewPricingService creates a PricingService.
func NewPricingService(shippingMethods shipping.Repository, coupons CouponApplier) *PricingService {
	return &PricingService{shipping: shippingMethods, coupons: coupons}
}

// CalculateTotal returns the order total: line totals, discounted by every
// coupon when any are given, plus the shipping price. Coupons never
// discount shipping.
func (s *PricingService) CalculateTotal(ctx context.Context, items []LineItem, shippingMethodID string, couponIDs []string) (*Pricing, error) {
	method, err := s.shipping.FindByID(ctx, shippingMethodID)
	switch {
	case errors.Is(err, shipping.ErrNotFound), err == nil && method == nil:
		return nil, &InvalidShippingMethodError{ShippingMethodID: shippingMethodID}
	case err != nil:
		return nil, errors.Wrap(err, "find shipping method")
	}

	productsTotal := decimal.Zero
	for _, li := range items {
		productsTotal = productsTotal.Add(li.Total())
	}

	discounted := productsTotal
	if len(couponIDs) > 0 {
		discounted, err = s.coupons.Apply(ctx, couponLines(items), couponIDs, productsTotal)
		if err != nil {
			return nil, errors.Wrap(err, "apply coupons")
		}
	}

	return &Pricing{
		ProductsTotal:   productsTotal,
		DiscountedTotal: discounted,
		ShippingPrice:   method.Price,
		Total:           discounted.Add(method.Price),
	}, nil
}
