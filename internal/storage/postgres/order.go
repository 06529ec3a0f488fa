package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xenking/kart-pricing/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (id, status, payment_status, payment_method, shipping_method_id,
		coupon_ids, products_total, discounts, shipping_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	insertLineItemSQL = `INSERT INTO order_line_items (order_id, position, product_id, quantity,
		base_price, purchased_price, category_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository stages orders for the unit of work that owns it.
type OrderRepository struct {
	staged []*order.Order
}

// Add stages the order together with the events it has recorded so far.
func (r *OrderRepository) Add(_ context.Context, o *order.Order) error {
	r.staged = append(r.staged, o)
	return nil
}

func (r *OrderRepository) flush(ctx context.Context, tx pgx.Tx) error {
	for _, o := range r.staged {
		if err := insertOrder(ctx, tx, o); err != nil {
			return err
		}
		for _, e := range o.Events() {
			if err := insertOutboxMessage(ctx, tx, e.Message()); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertOrder(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	_, err := tx.Exec(ctx, insertOrderSQL,
		o.ID, o.Status.String(), o.PaymentStatus.String(), o.PaymentMethod.String(), o.ShippingMethodID,
		nonNil(o.CouponIDs), o.ProductsTotal, o.Discounts, o.ShippingPrice, o.Total, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}

	batch := &pgx.Batch{}
	for i, li := range o.LineItems {
		batch.Queue(insertLineItemSQL,
			o.ID, i, li.ProductID, li.Quantity, li.BasePrice, li.PurchasedPrice, nonNil(li.CategoryIDs))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("creating line items for order %q: %w", o.ID, err)
	}
	return nil
}
