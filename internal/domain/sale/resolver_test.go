package sale

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/kart-pricing/internal/domain/discount"
	"github.com/xenking/kart-pricing/internal/domain/product"
)

type mockSaleRepo struct {
	sales       []Sale
	err         error
	productIDs  []string
	categoryIDs []string
	calls       int
}

func (m *mockSaleRepo) FindActiveSalesForProducts(_ context.Context, productIDs, categoryIDs []string) ([]Sale, error) {
	m.calls++
	m.productIDs = productIDs
	m.categoryIDs = categoryIDs
	return m.sales, m.err
}

func TestResolver_ApplicableSales(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	active := discount.Restore(10, "10% off", now.Add(-time.Hour), now.Add(time.Hour))
	expired := discount.Restore(30, "gone", now.Add(-3*time.Hour), now.Add(-time.Hour))
	upcoming := discount.Restore(30, "soon", now.Add(time.Hour), now.Add(3*time.Hour))

	phone := &product.Product{ID: "phone", CategoryIDs: []string{"electronics"}}
	cable := &product.Product{ID: "cable", CategoryIDs: []string{"electronics", "accessories"}}
	book := &product.Product{ID: "book", CategoryIDs: []string{"books"}}

	tests := []struct {
		name  string
		sales []Sale
		want  map[string][]string
	}{
		{
			name:  "category sale covers every product in category",
			sales: []Sale{{ID: "s1", Discount: active, Categories: NewSet("electronics")}},
			want:  map[string][]string{"phone": {"s1"}, "cable": {"s1"}},
		},
		{
			name:  "product sale covers only listed product",
			sales: []Sale{{ID: "s1", Discount: active, Products: NewSet("book")}},
			want:  map[string][]string{"book": {"s1"}},
		},
		{
			name: "exclusion wins over category match",
			sales: []Sale{{
				ID: "s1", Discount: active,
				Categories:       NewSet("electronics"),
				ExcludedProducts: NewSet("cable"),
			}},
			want: map[string][]string{"phone": {"s1"}},
		},
		{
			name: "exclusion wins over explicit product",
			sales: []Sale{{
				ID: "s1", Discount: active,
				Products:         NewSet("phone"),
				ExcludedProducts: NewSet("phone"),
			}},
			want: map[string][]string{},
		},
		{
			name: "expired and upcoming sales ignored",
			sales: []Sale{
				{ID: "old", Discount: expired, Categories: NewSet("electronics")},
				{ID: "new", Discount: upcoming, Categories: NewSet("electronics")},
			},
			want: map[string][]string{},
		},
		{
			name: "multiple sales per product kept",
			sales: []Sale{
				{ID: "s1", Discount: active, Categories: NewSet("accessories")},
				{ID: "s2", Discount: active, Products: NewSet("cable")},
			},
			want: map[string][]string{"cable": {"s1", "s2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSaleRepo{sales: tt.sales}
			r := NewResolver(repo)
			r.now = func() time.Time { return now }

			got, err := r.ApplicableSales(context.Background(), []*product.Product{phone, cable, book})
			require.NoError(t, err)
			assert.Equal(t, 1, repo.calls)

			ids := make(map[string][]string, len(got))
			for pid, sales := range got {
				for _, s := range sales {
					ids[pid] = append(ids[pid], s.ID)
				}
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestResolver_PassesProductsAndCategories(t *testing.T) {
	repo := &mockSaleRepo{}
	r := NewResolver(repo)

	_, err := r.ApplicableSales(context.Background(), []*product.Product{
		{ID: "a", CategoryIDs: []string{"x", "y"}},
		{ID: "b", CategoryIDs: []string{"y"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, repo.productIDs)
	assert.ElementsMatch(t, []string{"x", "y"}, repo.categoryIDs)
}

func TestResolver_RepoError(t *testing.T) {
	r := NewResolver(&mockSaleRepo{err: errors.New("db down")})

	_, err := r.ApplicableSales(context.Background(), []*product.Product{{ID: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find active sales")
}

func TestNew(t *testing.T) {
	d := discount.Restore(10, "", time.Time{}, time.Time{}.Add(time.Hour))

	_, err := New("s", d, nil, nil, nil)
	var verr *discount.ValidationError
	require.ErrorAs(t, err, &verr)

	s, err := New("s", d, nil, NewSet("c"), nil)
	require.NoError(t, err)
	assert.True(t, s.Categories.Has("c"))
}
