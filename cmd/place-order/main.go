// Command place-order places one order directly against the database, the
// same way the pricing server does.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/order"
	"github.com/xenking/kart-pricing/internal/domain/sale"
	"github.com/xenking/kart-pricing/internal/messaging/kafka"
	"github.com/xenking/kart-pricing/internal/outbox"
	"github.com/xenking/kart-pricing/internal/storage/postgres"
)

type options struct {
	databaseURL string
	items       string
	shipping    string
	coupons     string
	payment     string
	brokers     string
}

func main() {
	var opts options
	flag.StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&opts.items, "items", "", "comma separated product:quantity pairs, e.g. laptop-14:2,novel:1")
	flag.StringVar(&opts.shipping, "shipping", "standard", "shipping method id")
	flag.StringVar(&opts.coupons, "coupons", "", "comma separated coupon ids")
	flag.StringVar(&opts.payment, "payment", string(order.PaymentCard), "payment method")
	flag.StringVar(&opts.brokers, "kafka-brokers", "", "comma separated Kafka brokers; when empty the event stays in the outbox")
	flag.Parse()

	lg, _ := zap.NewDevelopment()
	defer func() { _ = lg.Sync() }()

	if opts.databaseURL == "" {
		opts.databaseURL = os.Getenv("DATABASE_URL")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = zctx.Base(ctx, lg)

	if err := run(ctx, lg, opts); err != nil {
		lg.Error("Place order failed", zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, lg *zap.Logger, opts options) error {
	if opts.databaseURL == "" {
		return errors.New("database URL is required: set --database-url or DATABASE_URL")
	}
	req, err := buildRequest(opts)
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, opts.databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	var dispatcher order.Dispatcher = outboxOnly{}
	if brokers := splitList(opts.brokers); len(brokers) > 0 {
		publisher := kafka.NewPublisher(brokers)
		defer func() { _ = publisher.Close() }()

		relay, err := outbox.NewRelay(postgres.NewOutboxStore(pool), publisher, outbox.RelayConfig{},
			lg.Named("outbox"), metricnoop.NewMeterProvider())
		if err != nil {
			return errors.Wrap(err, "create outbox relay")
		}
		dispatcher = relay
	}

	placer, err := order.NewPlacer(
		postgres.UnitOfWorkFactory(pool),
		sale.NewResolver(postgres.NewSaleRepository(pool)),
		order.NewPricingService(
			postgres.NewShippingRepository(pool),
			coupon.NewService(postgres.NewCouponRepository(pool)),
		),
		dispatcher,
		tracenoop.NewTracerProvider(),
		metricnoop.NewMeterProvider(),
	)
	if err != nil {
		return errors.Wrap(err, "create order placer")
	}

	o, err := placer.PlaceOrder(ctx, req)
	if err != nil {
		return err
	}

	for _, li := range o.LineItems {
		lg.Info("Line item",
			zap.String("product_id", li.ProductID),
			zap.Int("quantity", li.Quantity),
			zap.Stringer("base_price", li.BasePrice),
			zap.Stringer("purchased_price", li.PurchasedPrice),
		)
	}
	lg.Info("Order",
		zap.String("id", o.ID),
		zap.Stringer("products_total", o.ProductsTotal),
		zap.Stringer("discounts", o.Discounts),
		zap.Stringer("shipping_price", o.ShippingPrice),
		zap.Stringer("total", o.Total),
	)
	return nil
}

func buildRequest(opts options) (order.PlaceOrderRequest, error) {
	drafts, err := parseItems(opts.items)
	if err != nil {
		return order.PlaceOrderRequest{}, err
	}
	method, ok := order.ParsePaymentMethod(opts.payment)
	if !ok {
		return order.PlaceOrderRequest{}, errors.Errorf("unknown payment method %q", opts.payment)
	}
	return order.PlaceOrderRequest{
		Items:            drafts,
		ShippingMethodID: opts.shipping,
		CouponIDs:        splitList(opts.coupons),
		PaymentMethod:    method,
	}, nil
}

// parseItems reads "id:qty,id:qty". Quantities are validated by the
// reservation, not here.
func parseItems(s string) ([]order.LineItemDraft, error) {
	var drafts []order.LineItemDraft
	for _, pair := range splitList(s) {
		id, qty, ok := strings.Cut(pair, ":")
		if !ok || id == "" {
			return nil, errors.Errorf("item %q: want product:quantity", pair)
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, errors.Wrapf(err, "item %q: quantity", pair)
		}
		drafts = append(drafts, order.LineItemDraft{ProductID: id, Quantity: n})
	}
	return drafts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// outboxOnly leaves the event for the server's relay.
type outboxOnly struct{}

func (outboxOnly) Dispatch(context.Context, []outbox.Message) error { return nil }
