// Package handler serves the order placement HTTP API.
package handler

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/ogen-go/ogen/ogenerrors"
	"go.uber.org/zap"

	"github.com/xenking/kart-pricing/gen/oas"
	"github.com/xenking/kart-pricing/internal/domain/order"
)

// Compile-time check ensuring Handler satisfies the ogen Handler interface.
var _ oas.Handler = (*Handler)(nil)

// OrderPlacer places orders. It is implemented by *order.Placer.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req order.PlaceOrderRequest) (*order.Order, error)
}

// Handler implements the ogen-generated Handler interface, delegating
// placement to the order placer.
type Handler struct {
	oas.UnimplementedHandler

	orders OrderPlacer
}

// NewHandler constructs a Handler.
func NewHandler(orders OrderPlacer) *Handler {
	return &Handler{orders: orders}
}

// NewServer wraps h in the generated router, reporting undecodable requests
// and unmapped failures through ErrorHandler.
func NewServer(h *Handler, opts ...oas.ServerOption) (*oas.Server, error) {
	opts = append([]oas.ServerOption{oas.WithErrorHandler(ErrorHandler)}, opts...)
	return oas.NewServer(h, opts...)
}

// ErrorHandler writes the JSON error body for failures that never reached
// mapOrderError: malformed requests are 400, everything else is 500.
func ErrorHandler(ctx context.Context, w http.ResponseWriter, _ *http.Request, err error) {
	var decodeErr *ogenerrors.DecodeRequestError
	if errors.As(err, &decodeErr) {
		writeError(w, http.StatusBadRequest, decodeErr.Err.Error())
		return
	}
	zctx.From(ctx).Error("Place order failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	e := new(jx.Encoder)
	resp := oas.Error{Code: status, Message: msg}
	resp.Encode(e)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = e.WriteTo(w)
}
