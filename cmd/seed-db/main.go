// Command seed-db creates the schema and loads a catalog of shipping
// methods, products, sales and coupons.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/xenking/kart-pricing/internal/storage/postgres"
)

func main() {
	var (
		databaseURL string
		catalogFile string
	)
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&catalogFile, "catalog-file", "db/seed/catalog.json", "path to catalog JSON file")
	flag.Parse()

	lg, _ := zap.NewDevelopment()
	defer func() { _ = lg.Sync() }()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		lg.Fatal("Database URL is required: set --database-url or DATABASE_URL")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, databaseURL, catalogFile); err != nil {
		lg.Error("Seed failed", zap.Error(err))
		cancel()
		os.Exit(1)
	}
	lg.Info("Seed completed")
}

func run(ctx context.Context, lg *zap.Logger, databaseURL, catalogFile string) error {
	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return errors.Wrap(err, "read catalog file")
	}
	c, err := parseCatalog(data, time.Now())
	if err != nil {
		return err
	}

	lg.Info("Connecting to database")
	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	lg.Info("Running migrations")
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return seed(ctx, lg, pool, c)
}

func seed(ctx context.Context, lg *zap.Logger, pool *pgxpool.Pool, c *catalog) error {
	shippingRepo := postgres.NewShippingRepository(pool)
	for _, m := range c.ShippingMethods {
		if err := shippingRepo.UpsertShippingMethod(ctx, m); err != nil {
			return errors.Wrapf(err, "upsert shipping method %s", m.ID)
		}
	}
	lg.Info("Upserted shipping methods", zap.Int("count", len(c.ShippingMethods)))

	if err := postgres.UpsertProducts(ctx, pool, c.Products); err != nil {
		return errors.Wrap(err, "upsert products")
	}
	lg.Info("Upserted products", zap.Int("count", len(c.Products)))

	saleRepo := postgres.NewSaleRepository(pool)
	for _, s := range c.Sales {
		if err := saleRepo.InsertSale(ctx, s); err != nil {
			return errors.Wrapf(err, "insert sale %s", s.ID)
		}
	}
	lg.Info("Inserted sales", zap.Int("count", len(c.Sales)))

	couponRepo := postgres.NewCouponRepository(pool)
	for _, cp := range c.Coupons {
		err := couponRepo.InsertCoupon(ctx, cp)
		switch {
		case errors.Is(err, postgres.ErrDuplicateCoupon):
			lg.Info("Coupon exists, skipped", zap.String("id", cp.ID))
		case err != nil:
			return errors.Wrapf(err, "insert coupon %s", cp.ID)
		}
	}
	lg.Info("Inserted coupons", zap.Int("count", len(c.Coupons)))
	return nil
}
