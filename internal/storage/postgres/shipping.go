package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/kart-pricing/internal/domain/shipping"
)

const (
	getShippingMethodSQL = `SELECT id, name, price FROM shipping_methods WHERE id = $1`

	upsertShippingMethodSQL = `INSERT INTO shipping_methods (id, name, price) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price`
)

var _ shipping.Repository = (*ShippingRepository)(nil)

// ShippingRepository implements shipping.Repository backed by PostgreSQL.
type ShippingRepository struct {
	pool *pgxpool.Pool
}

// NewShippingRepository returns a ShippingRepository that uses the given pool.
func NewShippingRepository(pool *pgxpool.Pool) *ShippingRepository {
	return &ShippingRepository{pool: pool}
}

// FindByID returns shipping.ErrNotFound when no method has the given id.
func (r *ShippingRepository) FindByID(ctx context.Context, id string) (*shipping.Method, error) {
	var m shipping.Method
	err := r.pool.QueryRow(ctx, getShippingMethodSQL, id).Scan(&m.ID, &m.Name, &m.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shipping.ErrNotFound
		}
		return nil, fmt.Errorf("getting shipping method %q: %w", id, err)
	}
	return &m, nil
}

// UpsertShippingMethod creates or replaces a shipping method.
func (r *ShippingRepository) UpsertShippingMethod(ctx context.Context, m shipping.Method) error {
	if _, err := r.pool.Exec(ctx, upsertShippingMethodSQL, m.ID, m.Name, m.Price); err != nil {
		return fmt.Errorf("upserting shipping method %q: %w", m.ID, err)
	}
	return nil
}
