package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/domain/sale"
)

const (
	getCouponsByIDsSQL = `SELECT id, code, percentage, description, starting_date, ending_date,
		usage_limit, min_price, auto_apply, is_active
		FROM coupons WHERE id = ANY($1)`

	getCouponRestrictionsSQL = `SELECT coupon_id, kind, categories_allowed,
		products_from_category_not_allowed, products_allowed
		FROM coupon_restrictions WHERE coupon_id = ANY($1) ORDER BY id`

	insertCouponSQL = `INSERT INTO coupons (id, code, percentage, description, starting_date, ending_date,
		usage_limit, min_price, auto_apply, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	insertCouponRestrictionSQL = `INSERT INTO coupon_restrictions (coupon_id, kind, categories_allowed,
		products_from_category_not_allowed, products_allowed)
		VALUES ($1, $2, $3, $4, $5)`
)

// ErrDuplicateCoupon is returned by InsertCoupon when the id or code is taken.
var ErrDuplicateCoupon = errors.New("coupon already exists")

var _ coupon.Repository = (*CouponRepository)(nil)

// CouponRepository implements coupon.Repository backed by PostgreSQL.
type CouponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository returns a CouponRepository that uses the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// FindAllByID returns the coupons with the given IDs together with their
// restrictions. Unknown IDs are skipped.
func (r *CouponRepository) FindAllByID(ctx context.Context, ids []string) ([]coupon.Coupon, error) {
	rows, err := r.pool.Query(ctx, getCouponsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting coupons by ids: %w", err)
	}
	coupons, err := pgx.CollectRows(rows, scanCoupon)
	if err != nil {
		return nil, fmt.Errorf("getting coupons by ids: %w", err)
	}
	if len(coupons) == 0 {
		return nil, nil
	}

	rows, err = r.pool.Query(ctx, getCouponRestrictionsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting coupon restrictions: %w", err)
	}
	restrictions, err := pgx.CollectRows(rows, scanRestriction)
	if err != nil {
		return nil, fmt.Errorf("getting coupon restrictions: %w", err)
	}

	byCoupon := make(map[string][]coupon.Restriction, len(coupons))
	for _, rr := range restrictions {
		byCoupon[rr.couponID] = append(byCoupon[rr.couponID], rr.restriction)
	}
	for i := range coupons {
		coupons[i].Restrictions = byCoupon[coupons[i].ID]
	}
	return coupons, nil
}

// InsertCoupon stores a coupon and its restrictions in one transaction.
func (r *CouponRepository) InsertCoupon(ctx context.Context, c coupon.Coupon) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertCouponSQL,
			c.ID, c.Code, c.Discount.Percentage, c.Discount.Description,
			c.Discount.StartingDate, c.Discount.EndingDate,
			c.UsageLimit, c.MinPrice, c.AutoApply, c.IsActive,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("inserting coupon %q: %w", c.ID, ErrDuplicateCoupon)
			}
			return fmt.Errorf("inserting coupon %q: %w", c.ID, err)
		}

		for _, rs := range c.Restrictions {
			var categoriesAllowed, notAllowed, productsAllowed []string
			switch rs := rs.(type) {
			case coupon.CategoryRestriction:
				categoriesAllowed, notAllowed = setSlice(rs.CategoriesAllowed), setSlice(rs.ProductsFromCategoryNotAllowed)
			case coupon.ProductRestriction:
				productsAllowed = setSlice(rs.ProductsAllowed)
			default:
				return fmt.Errorf("inserting coupon %q: unsupported restriction %T", c.ID, rs)
			}
			_, err := tx.Exec(ctx, insertCouponRestrictionSQL,
				c.ID, string(rs.Kind()), nonNil(categoriesAllowed), nonNil(notAllowed), nonNil(productsAllowed))
			if err != nil {
				return fmt.Errorf("inserting restriction for coupon %q: %w", c.ID, err)
			}
		}
		return nil
	})
}

func scanCoupon(row pgx.CollectableRow) (coupon.Coupon, error) {
	var (
		c   coupon.Coupon
		pct int
		d   discount.Discount
	)
	err := row.Scan(
		&c.ID, &c.Code, &pct, &d.Description, &d.StartingDate, &d.EndingDate,
		&c.UsageLimit, &c.MinPrice, &c.AutoApply, &c.IsActive,
	)
	c.Discount = discount.Restore(pct, d.Description, d.StartingDate, d.EndingDate)
	return c, err
}

type restrictionRow struct {
	couponID    string
	restriction coupon.Restriction
}

func scanRestriction(row pgx.CollectableRow) (restrictionRow, error) {
	var (
		rr                restrictionRow
		kind              string
		categoriesAllowed []string
		notAllowed        []string
		productsAllowed   []string
	)
	if err := row.Scan(&rr.couponID, &kind, &categoriesAllowed, &notAllowed, &productsAllowed); err != nil {
		return rr, err
	}
	k, ok := coupon.ParseRestrictionKind(kind)
	if !ok {
		return rr, fmt.Errorf("coupon %q: unknown restriction kind %q", rr.couponID, kind)
	}
	switch k {
	case coupon.KindCategory:
		rr.restriction = coupon.CategoryRestriction{
			CategoriesAllowed:              sale.NewSet(categoriesAllowed...),
			ProductsFromCategoryNotAllowed: sale.NewSet(notAllowed...),
		}
	case coupon.KindProduct:
		rr.restriction = coupon.ProductRestriction{ProductsAllowed: sale.NewSet(productsAllowed...)}
	}
	return rr, nil
}
