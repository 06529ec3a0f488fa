// Command coupon-ingest turns bulk lists of generated coupon codes into
// coupons. A code becomes a coupon when it is listed in enough of the
// gzipped input files.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/storage/postgres"
)

type options struct {
	databaseURL string
	pattern     string
	minFiles    int
	capacity    uint
	percentage  int
	days        int
	usageLimit  int
}

func main() {
	var opts options
	flag.StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&opts.pattern, "files", "data/couponbase*.gz", "glob of gzipped code lists, one code per line")
	flag.IntVar(&opts.minFiles, "min-files", 2, "number of files a code must appear in")
	flag.UintVar(&opts.capacity, "expected-codes", 1_000_000, "expected codes per file, sizes the bloom filters")
	flag.IntVar(&opts.percentage, "percentage", 10, "discount percentage of ingested coupons")
	flag.IntVar(&opts.days, "days", 30, "validity of ingested coupons in days")
	flag.IntVar(&opts.usageLimit, "usage-limit", 1, "usage limit of ingested coupons")
	flag.Parse()

	lg, _ := zap.NewDevelopment()
	defer func() { _ = lg.Sync() }()

	if opts.databaseURL == "" {
		opts.databaseURL = os.Getenv("DATABASE_URL")
	}
	if opts.databaseURL == "" {
		lg.Fatal("Database URL is required: set --database-url or DATABASE_URL")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, lg, opts); err != nil {
		lg.Error("Coupon ingest failed", zap.Error(err))
		cancel()
		os.Exit(1)
	}
	lg.Info("Coupon ingest completed")
}

func run(ctx context.Context, lg *zap.Logger, opts options) error {
	files, err := filepath.Glob(opts.pattern)
	if err != nil {
		return errors.Wrap(err, "match files")
	}
	if len(files) == 0 {
		return errors.Errorf("no files match %q", opts.pattern)
	}

	s := &scanner{lg: lg, capacity: opts.capacity, fpRate: 0.001, minFiles: opts.minFiles}
	codes, err := s.commonCodes(ctx, files)
	if err != nil {
		return err
	}
	lg.Info("Codes accepted", zap.Int("count", len(codes)))

	now := time.Now()
	coupons, err := buildCoupons(codes, opts, now)
	if err != nil {
		return err
	}
	if len(coupons) == 0 {
		return nil
	}

	pool, err := postgres.NewPool(ctx, opts.databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	repo := postgres.NewCouponRepository(pool)
	var inserted, skipped int
	for _, c := range coupons {
		err := repo.InsertCoupon(ctx, c)
		switch {
		case errors.Is(err, postgres.ErrDuplicateCoupon):
			skipped++
		case err != nil:
			return errors.Wrapf(err, "insert coupon %s", c.ID)
		default:
			inserted++
		}
	}
	lg.Info("Coupons written", zap.Int("inserted", inserted), zap.Int("skipped", skipped))
	return nil
}

// buildCoupons makes one unrestricted coupon per code, valid from now.
func buildCoupons(codes []string, opts options, now time.Time) ([]coupon.Coupon, error) {
	d, err := discount.New(now, opts.percentage, "Promo code", now, now.AddDate(0, 0, opts.days))
	if err != nil {
		return nil, errors.Wrap(err, "coupon discount")
	}
	out := make([]coupon.Coupon, 0, len(codes))
	for _, code := range codes {
		c, err := coupon.New(code, code, d, opts.usageLimit, decimal.Zero, false)
		if err != nil {
			return nil, errors.Wrapf(err, "coupon %s", code)
		}
		out = append(out, c)
	}
	return out, nil
}
