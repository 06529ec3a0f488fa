package main

import (
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/domain/product"
	"github.com/xenking/kart-pricing/internal/domain/sale"
	"github.com/xenking/kart-pricing/internal/domain/shipping"
)

type catalogJSON struct {
	ShippingMethods []shippingJSON `json:"shipping_methods"`
	Products        []productJSON  `json:"products"`
	Sales           []saleJSON     `json:"sales"`
	Coupons         []couponJSON   `json:"coupons"`
}

type shippingJSON struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type productJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryIDs []string        `json:"category_ids"`
}

// windowJSON is a discount that starts at seed time and lasts Days.
type windowJSON struct {
	Percentage  int    `json:"percentage"`
	Description string `json:"description"`
	Days        int    `json:"days"`
}

type saleJSON struct {
	ID string `json:"id"`
	windowJSON
	ProductIDs         []string `json:"product_ids"`
	CategoryIDs        []string `json:"category_ids"`
	ExcludedProductIDs []string `json:"excluded_product_ids"`
}

type restrictionJSON struct {
	Kind                           string   `json:"kind"`
	CategoriesAllowed              []string `json:"categories_allowed"`
	ProductsFromCategoryNotAllowed []string `json:"products_from_category_not_allowed"`
	ProductsAllowed                []string `json:"products_allowed"`
}

type couponJSON struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	windowJSON
	UsageLimit   int               `json:"usage_limit"`
	MinPrice     decimal.Decimal   `json:"min_price"`
	AutoApply    bool              `json:"auto_apply"`
	Restrictions []restrictionJSON `json:"restrictions"`
}

// catalog is the validated seed data.
type catalog struct {
	ShippingMethods []shipping.Method
	Products        []product.Product
	Sales           []sale.Sale
	Coupons         []coupon.Coupon
}

// parseCatalog decodes and validates seed data. Discount windows start at now.
func parseCatalog(data []byte, now time.Time) (*catalog, error) {
	var raw catalogJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse catalog JSON")
	}

	c := &catalog{}
	for _, m := range raw.ShippingMethods {
		c.ShippingMethods = append(c.ShippingMethods, shipping.Method(m))
	}
	for _, p := range raw.Products {
		if p.Quantity < 0 {
			return nil, errors.Errorf("product %s: negative quantity %d", p.ID, p.Quantity)
		}
		c.Products = append(c.Products, product.Product{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Quantity:    p.Quantity,
			CategoryIDs: p.CategoryIDs,
		})
	}
	for _, s := range raw.Sales {
		d, err := s.discount(now)
		if err != nil {
			return nil, errors.Wrapf(err, "sale %s", s.ID)
		}
		parsed, err := sale.New(s.ID, d,
			sale.NewSet(s.ProductIDs...), sale.NewSet(s.CategoryIDs...), sale.NewSet(s.ExcludedProductIDs...))
		if err != nil {
			return nil, errors.Wrapf(err, "sale %s", s.ID)
		}
		c.Sales = append(c.Sales, parsed)
	}
	for _, cj := range raw.Coupons {
		parsed, err := cj.coupon(now)
		if err != nil {
			return nil, errors.Wrapf(err, "coupon %s", cj.ID)
		}
		c.Coupons = append(c.Coupons, parsed)
	}
	return c, nil
}

func (w windowJSON) discount(now time.Time) (discount.Discount, error) {
	return discount.New(now, w.Percentage, w.Description, now, now.AddDate(0, 0, w.Days))
}

func (cj couponJSON) coupon(now time.Time) (coupon.Coupon, error) {
	d, err := cj.discount(now)
	if err != nil {
		return coupon.Coupon{}, err
	}
	restrictions := make([]coupon.Restriction, 0, len(cj.Restrictions))
	for _, r := range cj.Restrictions {
		kind, ok := coupon.ParseRestrictionKind(r.Kind)
		if !ok {
			return coupon.Coupon{}, errors.Errorf("unknown restriction kind %q", r.Kind)
		}
		switch kind {
		case coupon.KindCategory:
			restrictions = append(restrictions, coupon.CategoryRestriction{
				CategoriesAllowed:              sale.NewSet(r.CategoriesAllowed...),
				ProductsFromCategoryNotAllowed: sale.NewSet(r.ProductsFromCategoryNotAllowed...),
			})
		case coupon.KindProduct:
			restrictions = append(restrictions, coupon.ProductRestriction{
				ProductsAllowed: sale.NewSet(r.ProductsAllowed...),
			})
		}
	}
	return coupon.New(cj.ID, cj.Code, d, cj.UsageLimit, cj.MinPrice, cj.AutoApply, restrictions...)
}
