// Package app wires the pricing server together.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/kart-pricing/gen/oas"
	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/order"
	"github.com/xenking/kart-pricing/internal/domain/sale"
	"github.com/xenking/kart-pricing/internal/domain/shipping"
	"github.com/xenking/kart-pricing/internal/handler"
	"github.com/xenking/kart-pricing/internal/messaging/kafka"
	"github.com/xenking/kart-pricing/internal/outbox"
	"github.com/xenking/kart-pricing/internal/storage/postgres"
	redisstore "github.com/xenking/kart-pricing/internal/storage/redis"
	"github.com/xenking/kart-pricing/pkg/health"
	"github.com/xenking/kart-pricing/pkg/httpmiddleware"
)

// maxBodyBytes caps order request bodies.
const maxBodyBytes = 1 << 20

// Run creates all dependencies, serves the order API and health endpoints, runs the
// outbox relay and shuts everything down when ctx is cancelled.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, health.PingCheck(pool))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	var shippingMethods shipping.Repository = postgres.NewShippingRepository(pool)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer func() { _ = rdb.Close() }()

		shippingMethods = redisstore.NewShippingCache(rdb, shippingMethods, cfg.Redis.TTL)
		healthSvc.AddReadinessCheck("redis", 2*time.Second, func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	store := postgres.NewOutboxStore(pool)
	var dispatcher order.Dispatcher = heldDispatcher{}
	var relay *outbox.Relay
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers)
		defer func() { _ = publisher.Close() }()

		relay, err = outbox.NewRelay(store, publisher, outbox.RelayConfig{
			Interval:  cfg.Outbox.Interval,
			BatchSize: cfg.Outbox.BatchSize,
		}, lg.Named("outbox"), m.MeterProvider())
		if err != nil {
			return errors.Wrap(err, "create outbox relay")
		}
		dispatcher = relay
		healthSvc.AddReadinessCheck("outbox", 5*time.Second,
			health.BacklogCheck(store.Backlog, cfg.Outbox.BacklogLimit))
	} else {
		lg.Warn("No Kafka brokers configured, events stay in the outbox")
	}

	pricing := order.NewPricingService(shippingMethods, coupon.NewService(postgres.NewCouponRepository(pool)))
	placer, err := order.NewPlacer(
		postgres.UnitOfWorkFactory(pool),
		sale.NewResolver(postgres.NewSaleRepository(pool)),
		pricing,
		dispatcher,
		m.TracerProvider(),
		m.MeterProvider(),
	)
	if err != nil {
		return errors.Wrap(err, "create order placer")
	}

	apiServer, err := handler.NewServer(handler.NewHandler(placer),
		oas.WithTracerProvider(m.TracerProvider()),
		oas.WithMeterProvider(m.MeterProvider()),
	)
	if err != nil {
		return errors.Wrap(err, "create api server")
	}

	mux := http.NewServeMux()
	mux.Handle("/v1/", apiServer)
	mux.Handle("GET /livez", http.HandlerFunc(healthSvc.LiveEndpoint))
	mux.Handle("GET /readyz", http.HandlerFunc(healthSvc.ReadyEndpoint))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(
			httpmiddleware.Wrap(mux,
				httpmiddleware.InjectLogger(zctx.From(ctx)),
				httpmiddleware.RequestID(),
				httpmiddleware.Recovery(),
				httpmiddleware.LogRequests(),
				httpmiddleware.LimitBody(maxBodyBytes),
			),
			"kart-pricing",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	healthSvc.Start(ctx, 10*time.Second)
	defer healthSvc.Stop()
	healthSvc.SetReady(true)

	g, gctx := errgroup.WithContext(ctx)
	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	return g.Wait()
}

// heldDispatcher leaves committed messages in the outbox table.
type heldDispatcher struct{}

func (heldDispatcher) Dispatch(context.Context, []outbox.Message) error { return nil }
