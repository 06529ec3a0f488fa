package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-pricing/internal/clock"
	"github.com/xenking/kart-pricing/internal/domain/discount"
)

// Service validates coupons against an order and applies their discounts.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a Service backed by the given Repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Apply resolves every coupon id in one batch, requires each coupon to be
// applicable to the order formed by lines and total, and returns total with
// all coupon discounts stacked. Either every coupon applies or none does:
// any rejection returns an error matching ErrInvalidCoupon and no discounted
// total. Duplicate ids are applied once.
func (s *Service) Apply(ctx context.Context, lines []Line, couponIDs []string, total decimal.Decimal) (decimal.Decimal, error) {
	ids := unique(couponIDs)
	if len(ids) == 0 {
		return total, nil
	}

	found, err := s.repo.FindAllByID(ctx, ids)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "find coupons")
	}

	byID := make(map[string]Coupon, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	// Resolve everything before evaluating so a stale id is reported even
	// when an earlier coupon would also fail.
	coupons := make([]Coupon, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return decimal.Zero, &InvalidCouponError{CouponID: id, Reason: ReasonNotFound}
		}
		coupons = append(coupons, c)
	}

	o := Order{Lines: lines, Total: total}
	now := clock.From(ctx, s.now)
	discounts := make([]discount.Discount, 0, len(coupons))
	for _, c := range coupons {
		if err := c.Check(o, now); err != nil {
			return decimal.Zero, err
		}
		discounts = append(discounts, c.Discount)
	}

	return discount.Apply(total, discounts), nil
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
