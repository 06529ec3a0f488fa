package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors for order validation.
var (
	ErrEmptyItems           = errors.New("items required")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.ProductID)
}

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientInventoryError indicates more units were requested than are
// available. Requested is the total across all drafts for the product.
type InsufficientInventoryError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidShippingMethodError indicates the shipping method does not exist.
type InvalidShippingMethodError struct {
	ShippingMethodID string
}

func (e *InvalidShippingMethodError) Error() string {
	return fmt.Sprintf("shipping method %s not found", e.ShippingMethodID)
}
