package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/kart-pricing/internal/domain/order"
	"github.com/xenking/kart-pricing/internal/domain/product"
)

var _ order.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork collects product updates and new orders and writes them, with
// the orders' outbox messages, in one transaction.
type UnitOfWork struct {
	pool     *pgxpool.Pool
	products *ProductRepository
	orders   *OrderRepository
}

// NewUnitOfWork starts an empty unit of work. It holds no connection until
// SaveChanges.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{
		pool:     pool,
		products: newProductRepository(pool),
		orders:   &OrderRepository{},
	}
}

// UnitOfWorkFactory returns a constructor suitable for order.NewPlacer.
func UnitOfWorkFactory(pool *pgxpool.Pool) func() order.UnitOfWork {
	return func() order.UnitOfWork { return NewUnitOfWork(pool) }
}

func (u *UnitOfWork) Products() product.Repository { return u.products }
func (u *UnitOfWork) Orders() order.Repository     { return u.orders }

// SaveChanges commits every staged write atomically. It fails with
// product.ErrConcurrentUpdate when a staged product changed since it was read.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	err := pgx.BeginFunc(ctx, u.pool, func(tx pgx.Tx) error {
		if err := u.products.flush(ctx, tx); err != nil {
			return err
		}
		return u.orders.flush(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("committing unit of work: %w", err)
	}
	return nil
}
