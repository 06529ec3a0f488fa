package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/domain/product"
	"github.com/xenking/kart-pricing/internal/domain/sale"
	"github.com/xenking/kart-pricing/internal/domain/shipping"
	"github.com/xenking/kart-pricing/internal/outbox"
)

// --- Mock implementations ---

type mockProductRepo struct {
	byID    map[string]*product.Product
	findErr error
	updated []string
	calls   int
}

func newProductRepo(products ...*product.Product) *mockProductRepo {
	byID := make(map[string]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockProductRepo{byID: byID}
}

func (m *mockProductRepo) FindAllByID(_ context.Context, ids []string) ([]*product.Product, error) {
	m.calls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*product.Product
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(_ context.Context, p *product.Product) error {
	m.updated = append(m.updated, p.ID)
	return nil
}

type mockSaleRepo struct {
	sales []sale.Sale
}

func (m *mockSaleRepo) FindActiveSalesForProducts(_ context.Context, _, _ []string) ([]sale.Sale, error) {
	return m.sales, nil
}

type mockShippingRepo struct {
	methods map[string]*shipping.Method
	err     error
}

func (m *mockShippingRepo) FindByID(_ context.Context, id string) (*shipping.Method, error) {
	if m.err != nil {
		return nil, m.err
	}
	method, ok := m.methods[id]
	if !ok {
		return nil, shipping.ErrNotFound
	}
	return method, nil
}

type mockCouponRepo struct {
	coupons map[string]coupon.Coupon
}

func (m *mockCouponRepo) FindAllByID(_ context.Context, ids []string) ([]coupon.Coupon, error) {
	var out []coupon.Coupon
	for _, id := range ids {
		if c, ok := m.coupons[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockOrderRepo struct {
	added  []*Order
	events []Event
	err    error
}

func (m *mockOrderRepo) Add(_ context.Context, o *Order) error {
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, o)
	m.events = append(m.events, o.Events()...)
	return nil
}

type fakeUnitOfWork struct {
	products *mockProductRepo
	orders   *mockOrderRepo
	saveErr  error
	saved    bool
}

func (u *fakeUnitOfWork) Products() product.Repository { return u.products }
func (u *fakeUnitOfWork) Orders() Repository           { return u.orders }

func (u *fakeUnitOfWork) SaveChanges(_ context.Context) error {
	if u.saveErr != nil {
		return u.saveErr
	}
	u.saved = true
	return nil
}

type mockDispatcher struct {
	msgs  []outbox.Message
	err   error
	calls int
}

func (m *mockDispatcher) Dispatch(_ context.Context, msgs []outbox.Message) error {
	m.calls++
	m.msgs = append(m.msgs, msgs...)
	return m.err
}

// --- Helpers ---

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// activeNow returns a discount whose window contains the current time.
func activeNow(pct int) discount.Discount {
	now := time.Now()
	return discount.Restore(pct, "", now.Add(-time.Hour), now.Add(time.Hour))
}

func newTestProduct(id, price string, qty int, categories ...string) *product.Product {
	return &product.Product{
		ID:          id,
		Name:        id,
		Price:       d(price),
		Quantity:    qty,
		CategoryIDs: categories,
	}
}

func standardShipping() *mockShippingRepo {
	return &mockShippingRepo{methods: map[string]*shipping.Method{
		"standard": {ID: "standard", Name: "Standard", Price: d("20")},
	}}
}

func couponRepo(coupons ...coupon.Coupon) *mockCouponRepo {
	m := &mockCouponRepo{coupons: make(map[string]coupon.Coupon, len(coupons))}
	for _, c := range coupons {
		m.coupons[c.ID] = c
	}
	return m
}
