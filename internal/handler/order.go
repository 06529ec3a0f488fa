package handler

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xenking/kart-pricing/gen/oas"
	"github.com/xenking/kart-pricing/internal/domain/coupon"
	"github.com/xenking/kart-pricing/internal/domain/order"
	"github.com/xenking/kart-pricing/internal/domain/product"
)

// PlaceOrder converts the OAS request to a domain request, delegates to the
// placer, and maps the result (or error) back to an OAS response.
func (h *Handler) PlaceOrder(ctx context.Context, req *oas.OrderRequest) (oas.PlaceOrderRes, error) {
	items := make([]order.LineItemDraft, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.LineItemDraft{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	o, err := h.orders.PlaceOrder(ctx, order.PlaceOrderRequest{
		Items:            items,
		ShippingMethodID: req.ShippingMethodID,
		CouponIDs:        req.CouponIds,
		PaymentMethod:    order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return mapOrderError(err)
	}

	return &oas.OrderHeaders{
		Location: "/v1/orders/" + o.ID,
		Response: orderToOAS(o),
	}, nil
}

// orderToOAS renders money as decimal strings so no precision is lost.
func orderToOAS(o *order.Order) oas.Order {
	lineItems := make([]oas.LineItem, len(o.LineItems))
	for i, li := range o.LineItems {
		lineItems[i] = oas.LineItem{
			ProductID:      li.ProductID,
			Quantity:       li.Quantity,
			BasePrice:      li.BasePrice.String(),
			PurchasedPrice: li.PurchasedPrice.String(),
		}
	}

	couponIDs := o.CouponIDs
	if couponIDs == nil {
		couponIDs = []string{}
	}

	return oas.Order{
		ID:               o.ID,
		Status:           o.Status.String(),
		PaymentStatus:    o.PaymentStatus.String(),
		PaymentMethod:    o.PaymentMethod.String(),
		ShippingMethodID: o.ShippingMethodID,
		CouponIds:        couponIDs,
		LineItems:        lineItems,
		ProductsTotal:    o.ProductsTotal.String(),
		Discounts:        o.Discounts.String(),
		ShippingPrice:    o.ShippingPrice.String(),
		Total:            o.Total.String(),
		CreatedAt:        o.CreatedAt.UTC(),
	}
}

// mapOrderError converts domain errors to OAS error responses. Errors it does
// not recognise are returned as is and end up in ErrorHandler.
func mapOrderError(err error) (oas.PlaceOrderRes, error) {
	if errors.Is(err, order.ErrEmptyItems) || errors.Is(err, order.ErrUnknownPaymentMethod) {
		return &oas.PlaceOrderBadRequest{
			Code:    400,
			Message: err.Error(),
		}, nil
	}

	var iqErr *order.InvalidQuantityError
	if errors.As(err, &iqErr) {
		return &oas.PlaceOrderBadRequest{
			Code:    400,
			Message: iqErr.Error(),
		}, nil
	}

	var pnfErr *order.ProductNotFoundError
	if errors.As(err, &pnfErr) {
		return &oas.PlaceOrderUnprocessableEntity{
			Code:    422,
			Message: pnfErr.Error(),
		}, nil
	}

	var insErr *order.InsufficientInventoryError
	if errors.As(err, &insErr) {
		return &oas.PlaceOrderUnprocessableEntity{
			Code:    422,
			Message: insErr.Error(),
		}, nil
	}

	var shErr *order.InvalidShippingMethodError
	if errors.As(err, &shErr) {
		return &oas.PlaceOrderUnprocessableEntity{
			Code:    422,
			Message: shErr.Error(),
		}, nil
	}

	if errors.Is(err, coupon.ErrInvalidCoupon) {
		msg := "invalid coupon applied"
		var cErr *coupon.InvalidCouponError
		if errors.As(err, &cErr) {
			msg = cErr.Error()
		}
		return &oas.PlaceOrderUnprocessableEntity{
			Code:    422,
			Message: msg,
		}, nil
	}

	if errors.Is(err, product.ErrConcurrentUpdate) {
		return &oas.PlaceOrderConflict{
			Code:    409,
			Message: "inventory changed concurrently, retry the order",
		}, nil
	}

	return nil, err
}
