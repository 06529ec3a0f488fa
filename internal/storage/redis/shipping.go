// Package redis caches read-mostly catalog data in Redis.
package redis

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/kart-pricing/internal/domain/shipping"
)

const shippingKeyPrefix = "kart:shipping:"

var _ shipping.Repository = (*ShippingCache)(nil)

// ShippingCache is a read-through cache in front of a shipping.Repository.
// Cache errors are logged and the lookup falls through to the backing
// repository. Missing methods are not cached.
type ShippingCache struct {
	rdb     redis.Cmdable
	backing shipping.Repository
	ttl     time.Duration
}

// NewShippingCache wraps backing with a Redis cache whose entries expire
// after ttl.
func NewShippingCache(rdb redis.Cmdable, backing shipping.Repository, ttl time.Duration) *ShippingCache {
	return &ShippingCache{rdb: rdb, backing: backing, ttl: ttl}
}

// FindByID returns the cached method or loads and caches it.
func (c *ShippingCache) FindByID(ctx context.Context, id string) (*shipping.Method, error) {
	key := shippingKeyPrefix + id
	lg := zctx.From(ctx)

	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		m, decErr := decodeMethod(data)
		if decErr == nil {
			return m, nil
		}
		lg.Warn("Drop malformed shipping cache entry", zap.String("key", key), zap.Error(decErr))
	case !errors.Is(err, redis.Nil):
		lg.Warn("Shipping cache read failed", zap.String("key", key), zap.Error(err))
	}

	m, err := c.backing.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.rdb.Set(ctx, key, encodeMethod(m), c.ttl).Err(); err != nil {
		lg.Warn("Shipping cache write failed", zap.String("key", key), zap.Error(err))
	}
	return m, nil
}

// Invalidate drops the cached entry for id.
func (c *ShippingCache) Invalidate(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, shippingKeyPrefix+id).Err(); err != nil {
		return errors.Wrap(err, "delete cache entry")
	}
	return nil
}

func encodeMethod(m *shipping.Method) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(m.ID)
	e.FieldStart("name")
	e.Str(m.Name)
	e.FieldStart("price")
	e.Str(m.Price.String())
	e.ObjEnd()
	return e.Bytes()
}

func decodeMethod(data []byte) (*shipping.Method, error) {
	var m shipping.Method
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			m.ID = v
			return err
		case "name":
			v, err := d.Str()
			m.Name = v
			return err
		case "price":
			v, err := d.Str()
			if err != nil {
				return err
			}
			m.Price, err = decimal.NewFromString(v)
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode shipping method")
	}
	if m.ID == "" {
		return nil, errors.New("decode shipping method: missing id")
	}
	return &m, nil
}
