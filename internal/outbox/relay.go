package outbox

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RelayConfig controls relay polling.
type RelayConfig struct {
	Interval  time.Duration
	BatchSize int
}

// Relay moves committed messages from a Store to a Publisher. A message is
// marked dispatched only after it was published, so delivery is
// at-least-once and consumers must tolerate duplicates.
type Relay struct {
	store     Store
	publisher Publisher
	cfg       RelayConfig
	lg        *zap.Logger

	published metric.Int64Counter
	failures  metric.Int64Counter
}

// NewRelay creates a Relay.
func NewRelay(store Store, publisher Publisher, cfg RelayConfig, lg *zap.Logger, mp metric.MeterProvider) (*Relay, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	meter := mp.Meter("github.com/xenking/kart-pricing/internal/outbox")
	published, err := meter.Int64Counter("outbox.published",
		metric.WithDescription("Outbox messages published"))
	if err != nil {
		return nil, errors.Wrap(err, "create published counter")
	}
	failures, err := meter.Int64Counter("outbox.publish_failures",
		metric.WithDescription("Failed outbox publish attempts"))
	if err != nil {
		return nil, errors.Wrap(err, "create failures counter")
	}

	return &Relay{
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		lg:        lg,
		published: published,
		failures:  failures,
	}, nil
}

// Run polls the store until ctx is cancelled. Publish failures are logged
// and retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
			r.lg.Error("Outbox flush failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Flush publishes pending messages batch by batch until the store is
// drained and returns how many were published.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	total := 0
	for {
		msgs, err := r.store.Pending(ctx, r.cfg.BatchSize)
		if err != nil {
			return total, errors.Wrap(err, "load pending")
		}
		if len(msgs) == 0 {
			return total, nil
		}

		if err := r.Dispatch(ctx, msgs); err != nil {
			return total, err
		}
		total += len(msgs)
		r.lg.Debug("Outbox batch published", zap.Int("count", len(msgs)))

		if len(msgs) < r.cfg.BatchSize {
			return total, nil
		}
	}
}

// Dispatch publishes msgs and marks them dispatched. It is used by the
// relay loop and by callers that want delivery right after commit.
func (r *Relay) Dispatch(ctx context.Context, msgs []Message) error {
	if len(msgs) == 0 {
		return nil
	}

	if err := r.publisher.Publish(ctx, msgs...); err != nil {
		r.failures.Add(ctx, 1)
		return errors.Wrap(err, "publish")
	}
	r.published.Add(ctx, int64(len(msgs)))

	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	if err := r.store.MarkDispatched(ctx, ids); err != nil {
		return errors.Wrap(err, "mark dispatched")
	}
	return nil
}
