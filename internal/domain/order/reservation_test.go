package order

import (
	"context"
	"math"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve_DecrementsStock(t *testing.T) {
	repo := newProductRepo(
		newTestProduct("p1", "10", 5),
		newTestProduct("p2", "20", 2),
	)
	r := NewInventoryReserver(repo)

	res, err := r.Reserve(context.Background(), []LineItemDraft{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "products must be fetched in one batch")
	assert.Equal(t, 2, res.Products["p1"].Quantity)
	assert.Equal(t, 0, res.Products["p2"].Quantity)
	assert.Equal(t, []ReservedProduct{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 2},
	}, res.Items)
	assert.Equal(t, []string{"p1", "p2"}, repo.updated)
}

func TestReserve_InsufficientInventory(t *testing.T) {
	p := newTestProduct("p1", "10", 3)
	repo := newProductRepo(p)
	r := NewInventoryReserver(repo)

	_, err := r.Reserve(context.Background(), []LineItemDraft{{ProductID: "p1", Quantity: 5}})

	var insErr *InsufficientInventoryError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, "p1", insErr.ProductID)
	assert.Equal(t, 5, insErr.Requested)
	assert.Equal(t, 3, insErr.Available)
	assert.Equal(t, 3, p.Quantity, "stock must be unchanged")
	assert.Empty(t, repo.updated)
}

func TestReserve_DuplicateDraftsSummed(t *testing.T) {
	p1 := newTestProduct("p1", "10", 4)
	p2 := newTestProduct("p2", "10", 10)
	repo := newProductRepo(p1, p2)
	r := NewInventoryReserver(repo)

	_, err := r.Reserve(context.Background(), []LineItemDraft{
		{ProductID: "p2", Quantity: 1},
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p1", Quantity: 2},
	})

	var insErr *InsufficientInventoryError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, 5, insErr.Requested)
	assert.Equal(t, 4, p1.Quantity)
	assert.Equal(t, 10, p2.Quantity, "earlier drafts must not be reserved")
}

func TestReserve_ExactStock(t *testing.T) {
	p := newTestProduct("p1", "10", 3)
	r := NewInventoryReserver(newProductRepo(p))

	_, err := r.Reserve(context.Background(), []LineItemDraft{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p1", Quantity: 2},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
}

func TestReserve_ProductNotFound(t *testing.T) {
	p := newTestProduct("p1", "10", 3)
	repo := newProductRepo(p)
	r := NewInventoryReserver(repo)

	_, err := r.Reserve(context.Background(), []LineItemDraft{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "missing", Quantity: 1},
	})

	var pnfErr *ProductNotFoundError
	require.ErrorAs(t, err, &pnfErr)
	assert.Equal(t, "missing", pnfErr.ProductID)
	assert.Equal(t, 3, p.Quantity, "nothing may be reserved")
	assert.Empty(t, repo.updated)
}

func TestReserve_InvalidInput(t *testing.T) {
	r := NewInventoryReserver(newProductRepo(newTestProduct("p1", "10", 3)))

	_, err := r.Reserve(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyItems)

	_, err = r.Reserve(context.Background(), []LineItemDraft{{ProductID: "p1", Quantity: 0}})
	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, "p1", iqErr.ProductID)
}

func TestReserve_RepoError(t *testing.T) {
	repo := newProductRepo()
	repo.findErr = errors.New("db down")
	r := NewInventoryReserver(repo)

	_, err := r.Reserve(context.Background(), []LineItemDraft{{ProductID: "p1", Quantity: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find products")
}

func TestReserve_HugeDuplicateQuantitiesDoNotWrap(t *testing.T) {
	tests := []struct {
		name   string
		drafts []LineItemDraft
	}{
		{
			name:   "two max quantities",
			drafts: []LineItemDraft{{ProductID: "p1", Quantity: math.MaxInt}, {ProductID: "p1", Quantity: math.MaxInt}},
		},
		{
			name:   "sum just past max",
			drafts: []LineItemDraft{{ProductID: "p1", Quantity: 1}, {ProductID: "p1", Quantity: math.MaxInt}},
		},
		{
			name:   "single max quantity",
			drafts: []LineItemDraft{{ProductID: "p1", Quantity: math.MaxInt}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProduct("p1", "10", 3)
			repo := newProductRepo(p)

			res, err := NewInventoryReserver(repo).Reserve(context.Background(), tt.drafts)

			var insErr *InsufficientInventoryError
			require.ErrorAs(t, err, &insErr)
			assert.Nil(t, res)
			assert.Equal(t, "p1", insErr.ProductID)
			assert.Equal(t, 3, insErr.Available)
			assert.Equal(t, 3, p.Quantity, "stock must be unchanged")
			assert.Empty(t, repo.updated)
		})
	}
}
