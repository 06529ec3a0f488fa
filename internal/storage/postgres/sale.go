package postgres

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/domain/sale"
)

const (
	findSalesForProductsSQL = `SELECT id, percentage, description, starting_date, ending_date,
		product_ids, category_ids, excluded_product_ids
		FROM sales
		WHERE ending_date >= now() - interval '1 day'
			AND (product_ids && $1::text[] OR category_ids && $2::text[])`

	insertSaleSQL = `INSERT INTO sales (id, percentage, description, starting_date, ending_date,
		product_ids, category_ids, excluded_product_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`
)

var _ sale.Repository = (*SaleRepository)(nil)

// SaleRepository implements sale.Repository backed by PostgreSQL.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository returns a SaleRepository that uses the given pool.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// FindActiveSalesForProducts returns sales overlapping the given products or
// categories. Sales that ended more than a day ago are skipped; the exact
// window check is left to the caller.
func (r *SaleRepository) FindActiveSalesForProducts(ctx context.Context, productIDs, categoryIDs []string) ([]sale.Sale, error) {
	rows, err := r.pool.Query(ctx, findSalesForProductsSQL, nonNil(productIDs), nonNil(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("finding sales: %w", err)
	}
	sales, err := pgx.CollectRows(rows, scanSale)
	if err != nil {
		return nil, fmt.Errorf("finding sales: %w", err)
	}
	return sales, nil
}

// InsertSale stores a sale, ignoring one that already exists.
func (r *SaleRepository) InsertSale(ctx context.Context, s sale.Sale) error {
	_, err := r.pool.Exec(ctx, insertSaleSQL,
		s.ID, s.Discount.Percentage, s.Discount.Description, s.Discount.StartingDate, s.Discount.EndingDate,
		nonNil(setSlice(s.Products)), nonNil(setSlice(s.Categories)), nonNil(setSlice(s.ExcludedProducts)),
	)
	if err != nil {
		return fmt.Errorf("inserting sale %q: %w", s.ID, err)
	}
	return nil
}

func scanSale(row pgx.CollectableRow) (sale.Sale, error) {
	var (
		s          sale.Sale
		pct        int
		d          discount.Discount
		products   []string
		categories []string
		excluded   []string
	)
	err := row.Scan(&s.ID, &pct, &d.Description, &d.StartingDate, &d.EndingDate, &products, &categories, &excluded)
	s.Discount = discount.Restore(pct, d.Description, d.StartingDate, d.EndingDate)
	s.Products = sale.NewSet(products...)
	s.Categories = sale.NewSet(categories...)
	s.ExcludedProducts = sale.NewSet(excluded...)
	return s, err
}

func setSlice(s sale.Set) []string {
	return slices.Sorted(maps.Keys(s))
}

// nonNil keeps NOT NULL array columns and array parameters from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
