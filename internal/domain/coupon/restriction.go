package coupon

import (
	"github.com/go-faster/errors"

	"github.com/xenking/kart-pricing/internal/domain/sale"
)

// RestrictionKind identifies a restriction variant in storage.
type RestrictionKind string

const (
	// KindCategory limits which products from allowed categories qualify.
	KindCategory RestrictionKind = "category"
	// KindProduct limits the order to an explicit product allow-list.
	KindProduct RestrictionKind = "product"
)

// ParseRestrictionKind looks up a RestrictionKind by name.
func ParseRestrictionKind(s string) (RestrictionKind, bool) {
	switch k := RestrictionKind(s); k {
	case KindCategory, KindProduct:
		return k, true
	default:
		return "", false
	}
}

// Restriction is a predicate over the composition of an order. The set of
// variants is closed: only types in this package implement it, and
// Evaluate switches over all of them.
type Restriction interface {
	Kind() RestrictionKind
	restriction()
}

// CategoryRestriction applies to products tagged with any allowed category.
// Such products must not be in ProductsFromCategoryNotAllowed; products
// outside the allowed categories are ignored.
type CategoryRestriction struct {
	CategoriesAllowed              sale.Set
	ProductsFromCategoryNotAllowed sale.Set
}

// ProductRestriction requires every ordered product to be in ProductsAllowed.
type ProductRestriction struct {
	ProductsAllowed sale.Set
}

func (CategoryRestriction) Kind() RestrictionKind { return KindCategory }
func (ProductRestriction) Kind() RestrictionKind  { return KindProduct }

func (CategoryRestriction) restriction() {}
func (ProductRestriction) restriction()  {}

// Evaluate reports whether the order satisfies r.
func Evaluate(r Restriction, o Order) (bool, error) {
	switch r := r.(type) {
	case CategoryRestriction:
		return r.satisfiedBy(o), nil
	case *CategoryRestriction:
		if r == nil {
			return false, errors.New("nil category restriction")
		}
		return r.satisfiedBy(o), nil
	case ProductRestriction:
		return r.satisfiedBy(o), nil
	case *ProductRestriction:
		if r == nil {
			return false, errors.New("nil product restriction")
		}
		return r.satisfiedBy(o), nil
	default:
		return false, errors.Errorf("unsupported restriction kind: %T", r)
	}
}

func (r CategoryRestriction) satisfiedBy(o Order) bool {
	for _, line := range o.Lines {
		if !r.CategoriesAllowed.HasAny(line.CategoryIDs) {
			continue
		}
		if r.ProductsFromCategoryNotAllowed.Has(line.ProductID) {
			return false
		}
	}
	return true
}

// satisfiedBy is all-or-nothing: one product outside the allow-list makes
// the whole order ineligible.
func (r ProductRestriction) satisfiedBy(o Order) bool {
	for _, line := range o.Lines {
		if !r.ProductsAllowed.Has(line.ProductID) {
			return false
		}
	}
	return true
}
