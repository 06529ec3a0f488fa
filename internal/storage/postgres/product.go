package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/kart-pricing/internal/domain/product"
)

const (
	getProductsByIDsSQL = `SELECT id, name, price, quantity, category_ids, version
		FROM products WHERE id = ANY($1)`

	updateProductSQL = `UPDATE products SET quantity = $3, version = version + 1
		WHERE id = $1 AND version = $2`

	upsertProductSQL = `INSERT INTO products (id, name, price, quantity, category_ids)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, price = EXCLUDED.price, quantity = EXCLUDED.quantity,
			category_ids = EXCLUDED.category_ids, version = products.version + 1`
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository. Reads go to the pool;
// updates are staged in memory and written by the unit of work that owns
// the repository.
type ProductRepository struct {
	q      querier
	staged map[string]*product.Product
	order  []string
}

func newProductRepository(q querier) *ProductRepository {
	return &ProductRepository{q: q, staged: make(map[string]*product.Product)}
}

// FindAllByID returns products matching any of the given IDs. Products
// staged in this unit of work are returned in their staged state.
func (r *ProductRepository) FindAllByID(ctx context.Context, ids []string) ([]*product.Product, error) {
	rows, err := r.q.Query(ctx, getProductsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting products by ids: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("getting products by ids: %w", err)
	}
	for i, p := range products {
		if s, ok := r.staged[p.ID]; ok {
			products[i] = s
		}
	}
	return products, nil
}

// Update stages the product's new quantity. The write is checked against
// the version that was read when the unit of work commits.
func (r *ProductRepository) Update(_ context.Context, p *product.Product) error {
	if _, ok := r.staged[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.staged[p.ID] = p
	return nil
}

func (r *ProductRepository) flush(ctx context.Context, tx pgx.Tx) error {
	for _, id := range r.order {
		p := r.staged[id]
		tag, err := tx.Exec(ctx, updateProductSQL, p.ID, p.Version, p.Quantity)
		if err != nil {
			return fmt.Errorf("updating product %q: %w", p.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("updating product %q: %w", p.ID, product.ErrConcurrentUpdate)
		}
	}
	return nil
}

// UpsertProducts writes catalog entries, replacing existing ones.
func UpsertProducts(ctx context.Context, pool *pgxpool.Pool, products []product.Product) error {
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(upsertProductSQL, p.ID, p.Name, p.Price, p.Quantity, nonNil(p.CategoryIDs))
	}
	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting products: %w", err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (*product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CategoryIDs, &p.Version)
	return &p, err
}
