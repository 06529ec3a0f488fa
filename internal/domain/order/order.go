package order

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/kart-pricing/internal/domain/product"
)

// Order is a placed customer order with its priced line items.
type Order struct {
	ID               string
	Status           Status
	PaymentStatus    PaymentStatus
	PaymentMethod    PaymentMethod
	LineItems        []LineItem
	ShippingMethodID string
	CouponIDs        []string
	ProductsTotal    decimal.Decimal
	Discounts        decimal.Decimal
	ShippingPrice    decimal.Decimal
	Total            decimal.Decimal
	CreatedAt        time.Time

	events []Event
}

// New creates a pending order from assembled line items and their pricing
// and records an OrderPlaced event.
func New(id string, items []LineItem, shippingMethodID string, couponIDs []string, method PaymentMethod, p *Pricing, now time.Time) *Order {
	o := &Order{
		ID:               id,
		Status:           StatusPending,
		PaymentStatus:    PaymentPending,
		PaymentMethod:    method,
		LineItems:        slices.Clone(items),
		ShippingMethodID: shippingMethodID,
		CouponIDs:        slices.Clone(couponIDs),
		ProductsTotal:    p.ProductsTotal,
		Discounts:        p.Discounts(),
		ShippingPrice:    p.ShippingPrice,
		Total:            p.Total,
		CreatedAt:        now,
	}
	o.record(newOrderPlaced(o))
	return o
}

func (o *Order) record(e Event) {
	o.events = append(o.events, e)
}

// Events returns the events recorded since the last drain.
func (o *Order) Events() []Event {
	return slices.Clone(o.events)
}

// DrainEvents returns the recorded events and clears them. Call it only
// after the order has been committed.
func (o *Order) DrainEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// Repository stages orders for persistence. Add only stages the order and
// its recorded events; both are written when the unit of work commits.
type Repository interface {
	Add(ctx context.Context, o *Order) error
}

// UnitOfWork collects the writes of one order placement and commits them
// atomically. A unit of work that is never saved persists nothing.
type UnitOfWork interface {
	Products() product.Repository
	Orders() Repository
	SaveChanges(ctx context.Context) error
}
