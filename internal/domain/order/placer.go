package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/kart-pricing/internal/clock"
	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/outbox"
)

// Dispatcher delivers outbox messages right after commit.
type Dispatcher interface {
	Dispatch(ctx context.Context, msgs []outbox.Message) error
}

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	Items            []LineItemDraft
	ShippingMethodID string
	CouponIDs        []string
	PaymentMethod    PaymentMethod
}

// Placer runs order placement inside a unit of work.
type Placer struct {
	newUnitOfWork func() UnitOfWork
	sales         SaleResolver
	pricing       *PricingService
	dispatcher    Dispatcher
	now           func() time.Time

	tracer   trace.Tracer
	placed   metric.Int64Counter
	rejected metric.Int64Counter
}

// NewPlacer creates a Placer. newUnitOfWork is called once per placement.
func NewPlacer(
	newUnitOfWork func() UnitOfWork,
	sales SaleResolver,
	pricing *PricingService,
	dispatcher Dispatcher,
	tp trace.TracerProvider,
	mp metric.MeterProvider,
) (*Placer, error) {
	const name = "github.com/xenking/kart-pricing/internal/domain/order"
	meter := mp.Meter(name)

	placed, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders committed"))
	if err != nil {
		return nil, errors.Wrap(err, "create placed counter")
	}
	rejected, err := meter.Int64Counter("orders.rejected",
		metric.WithDescription("Order placements aborted, by reason"))
	if err != nil {
		return nil, errors.Wrap(err, "create rejected counter")
	}

	return &Placer{
		newUnitOfWork: newUnitOfWork,
		sales:         sales,
		pricing:       pricing,
		dispatcher:    dispatcher,
		now:           time.Now,
		tracer:        tp.Tracer(name),
		placed:        placed,
		rejected:      rejected,
	}, nil
}

// PlaceOrder assembles and prices the requested items, commits the order
// with its reserved inventory and outbox events, then hands the events to
// the dispatcher. Any failure before commit leaves storage untouched.
func (p *Placer) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	ctx, span := p.tracer.Start(ctx, "PlaceOrder")
	defer span.End()

	o, err := p.place(ctx, req)
	if err != nil {
		reason := rejectionReason(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		p.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
		zctx.From(ctx).Warn("Order rejected", zap.String("reason", reason), zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", o.ID))
	p.placed.Add(ctx, 1)

	// The events are already stored in the outbox; a failed dispatch is
	// retried by the relay.
	events := o.DrainEvents()
	msgs := make([]outbox.Message, len(events))
	for i, e := range events {
		msgs[i] = e.Message()
	}
	if err := p.dispatcher.Dispatch(ctx, msgs); err != nil {
		zctx.From(ctx).Warn("Dispatch deferred to relay",
			zap.String("order_id", o.ID), zap.Error(err))
	}

	zctx.From(ctx).Info("Order placed",
		zap.String("order_id", o.ID),
		zap.Int("items", len(o.LineItems)),
		zap.Stringer("total", o.Total),
	)
	return o, nil
}

func (p *Placer) place(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if _, ok := ParsePaymentMethod(string(req.PaymentMethod)); !ok {
		return nil, ErrUnknownPaymentMethod
	}

	now := p.now()
	ctx = clock.With(ctx, now)

	uow := p.newUnitOfWork()
	assembler := NewAssembler(NewInventoryReserver(uow.Products()), p.sales)

	items, err := assembler.Assemble(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	pricing, err := p.pricing.CalculateTotal(ctx, items, req.ShippingMethodID, req.CouponIDs)
	if err != nil {
		return nil, err
	}

	o := New(uuid.New().String(), items, req.ShippingMethodID, req.CouponIDs, req.PaymentMethod, pricing, now)
	if err := uow.Orders().Add(ctx, o); err != nil {
		return nil, errors.Wrap(err, "stage order")
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return nil, errors.Wrap(err, "save changes")
	}
	return o, nil
}

func rejectionReason(err error) string {
	var (
		notFound     *ProductNotFoundError
		insufficient *InsufficientInventoryError
		quantity     *InvalidQuantityError
		shippingErr  *InvalidShippingMethodError
	)
	switch {
	case errors.As(err, &notFound):
		return "product_not_found"
	case errors.As(err, &insufficient):
		return "insufficient_inventory"
	case errors.As(err, &shippingErr):
		return "invalid_shipping_method"
	case errors.Is(err, coupon.ErrInvalidCoupon):
		return "invalid_coupon"
	case errors.As(err, &quantity), errors.Is(err, ErrEmptyItems), errors.Is(err, ErrUnknownPaymentMethod):
		return "invalid_request"
	default:
		return "internal"
	}
}
