package order

import (
	"context"
	"math"

	"github.com/go-faster/errors"

	"github.com/xenking/kart-pricing/internal/domain/product"
)

// Reservation is the outcome of reserving inventory for a batch of drafts.
type Reservation struct {
	// Products holds every referenced product, keyed by id, with its
	// quantity already decremented.
	Products map[string]*product.Product
	// Items holds one entry per draft, in draft order.
	Items []ReservedProduct
}

// InventoryReserver decrements available stock for requested products.
type InventoryReserver struct {
	products product.Repository
}

// NewInventoryReserver creates an InventoryReserver over the given
// Repository. The repository should belong to the request's unit of work,
// since reserved quantities are only staged.
func NewInventoryReserver(products product.Repository) *InventoryReserver {
	return &InventoryReserver{products: products}
}

// Reserve fetches every referenced product in one call and decrements the
// requested quantities in memory. It is all-or-nothing: when any product is
// missing or short on stock no quantity is changed.
func (r *InventoryReserver) Reserve(ctx context.Context, drafts []LineItemDraft) (*Reservation, error) {
	if len(drafts) == 0 {
		return nil, ErrEmptyItems
	}

	// Validate quantities and collect unique product IDs in request order.
	ids := make([]string, 0, len(drafts))
	required := make(map[string]int, len(drafts))
	for _, draft := range drafts {
		if draft.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: draft.ProductID}
		}
		sum, seen := required[draft.ProductID]
		if !seen {
			ids = append(ids, draft.ProductID)
		}
		// Saturate instead of wrapping; no stock level reaches MaxInt.
		if draft.Quantity > math.MaxInt-sum {
			required[draft.ProductID] = math.MaxInt
			continue
		}
		required[draft.ProductID] = sum + draft.Quantity
	}

	// Batch fetch all products in a single query.
	fetched, err := r.products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}

	byID := make(map[string]*product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	// Check everything before touching any quantity.
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		if required[id] > p.Quantity || required[id] == math.MaxInt {
			return nil, &InsufficientInventoryError{
				ProductID: id,
				Requested: required[id],
				Available: p.Quantity,
			}
		}
	}

	res := &Reservation{
		Products: make(map[string]*product.Product, len(ids)),
		Items:    make([]ReservedProduct, len(drafts)),
	}
	for i, draft := range drafts {
		byID[draft.ProductID].Quantity -= draft.Quantity
		res.Items[i] = ReservedProduct{ProductID: draft.ProductID, Quantity: draft.Quantity}
	}
	for _, id := range ids {
		p := byID[id]
		if err := r.products.Update(ctx, p); err != nil {
			return nil, errors.Wrapf(err, "stage product %s", id)
		}
		res.Products[id] = p
	}

	return res, nil
}
