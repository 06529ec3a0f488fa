package coupon

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-pricing/internal/domain/discount"
)

// ErrInvalidCoupon is matched by every coupon rejection: unknown id,
// inactive, expired, below minimum price or restriction violated.
var ErrInvalidCoupon = errors.New("invalid coupon applied")

// Reason describes why a coupon was rejected.
type Reason string

const (
	ReasonNotFound      Reason = "not found"
	ReasonInactive      Reason = "inactive"
	ReasonExpired       Reason = "outside discount window"
	ReasonBelowMinPrice Reason = "order total below minimum price"
	ReasonRestricted    Reason = "restriction not satisfied"
)

// InvalidCouponError reports a rejected coupon. It matches ErrInvalidCoupon.
type InvalidCouponError struct {
	CouponID string
	Reason   Reason
}

func (e *InvalidCouponError) Error() string {
	return fmt.Sprintf("coupon %s: %s", e.CouponID, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidCoupon) succeed.
func (e *InvalidCouponError) Is(target error) bool {
	return target == ErrInvalidCoupon
}

// Coupon is a user-invoked discount code. UsageLimit is stored but not
// enforced, since redemptions are not counted anywhere.
type Coupon struct {
	ID           string
	Code         string
	Discount     discount.Discount
	UsageLimit   int
	MinPrice     decimal.Decimal
	AutoApply    bool
	IsActive     bool
	Restrictions []Restriction
}

// New validates and returns an active Coupon.
func New(id, code string, d discount.Discount, usageLimit int, minPrice decimal.Decimal, autoApply bool, restrictions ...Restriction) (Coupon, error) {
	if code == "" {
		return Coupon{}, &discount.ValidationError{Field: "code", Reason: "must not be empty"}
	}
	if usageLimit < 0 {
		return Coupon{}, &discount.ValidationError{Field: "usage limit", Reason: "must not be negative"}
	}
	if minPrice.IsNegative() {
		return Coupon{}, &discount.ValidationError{Field: "minimum price", Reason: "must not be negative"}
	}
	return Coupon{
		ID:           id,
		Code:         code,
		Discount:     d,
		UsageLimit:   usageLimit,
		MinPrice:     minPrice,
		AutoApply:    autoApply,
		IsActive:     true,
		Restrictions: restrictions,
	}, nil
}

// Line is the product composition of one order line as seen by restrictions.
type Line struct {
	ProductID   string
	CategoryIDs []string
}

// Order is a snapshot of an order built for a single coupon evaluation.
type Order struct {
	Lines []Line
	Total decimal.Decimal
}

// Check returns nil when the coupon can be applied to o at now, an
// *InvalidCouponError naming the first failed rule otherwise. Any other
// error means a restriction could not be evaluated.
func (c Coupon) Check(o Order, now time.Time) error {
	reject := func(r Reason) error {
		return &InvalidCouponError{CouponID: c.ID, Reason: r}
	}

	if !c.IsActive {
		return reject(ReasonInactive)
	}
	if !c.Discount.IsValidToDate(now) {
		return reject(ReasonExpired)
	}
	if o.Total.LessThan(c.MinPrice) {
		return reject(ReasonBelowMinPrice)
	}
	for _, r := range c.Restrictions {
		ok, err := Evaluate(r, o)
		if err != nil {
			return errors.Wrapf(err, "coupon %s", c.ID)
		}
		if !ok {
			return reject(ReasonRestricted)
		}
	}
	return nil
}

// CanBeApplied reports whether the coupon is active, inside its window,
// met by the order total and satisfied by every restriction.
func (c Coupon) CanBeApplied(o Order, now time.Time) bool {
	return c.Check(o, now) == nil
}

// Repository provides batch lookup of coupons.
type Repository interface {
	FindAllByID(ctx context.Context, ids []string) ([]Coupon, error)
}
