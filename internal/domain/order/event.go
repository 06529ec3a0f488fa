package order

import (
	"time"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/kart-pricing/internal/outbox"
)

// TopicOrderPlaced is the outbox topic for OrderPlaced events.
const TopicOrderPlaced = "order.placed"

// Event is a domain event recorded on an order.
type Event interface {
	// Message encodes the event for the outbox.
	Message() outbox.Message
}

// OrderPlaced is recorded when an order is created. Downstream payment and
// shipment workflows start from it.
type OrderPlaced struct {
	EventID       string
	OrderID       string
	PaymentMethod PaymentMethod
	Total         decimal.Decimal
	Items         []ReservedProduct
	PlacedAt      time.Time
}

func newOrderPlaced(o *Order) OrderPlaced {
	items := make([]ReservedProduct, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = ReservedProduct{ProductID: li.ProductID, Quantity: li.Quantity}
	}
	return OrderPlaced{
		EventID:       uuid.New().String(),
		OrderID:       o.ID,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		Items:         items,
		PlacedAt:      o.CreatedAt,
	}
}

// Message encodes the event as JSON keyed by order id.
func (e OrderPlaced) Message() outbox.Message {
	var enc jx.Encoder
	enc.ObjStart()
	enc.FieldStart("event_id")
	enc.Str(e.EventID)
	enc.FieldStart("order_id")
	enc.Str(e.OrderID)
	enc.FieldStart("payment_method")
	enc.Str(e.PaymentMethod.String())
	enc.FieldStart("total")
	enc.Str(e.Total.String())
	enc.FieldStart("items")
	enc.ArrStart()
	for _, item := range e.Items {
		enc.ObjStart()
		enc.FieldStart("product_id")
		enc.Str(item.ProductID)
		enc.FieldStart("quantity")
		enc.Int(item.Quantity)
		enc.ObjEnd()
	}
	enc.ArrEnd()
	enc.FieldStart("placed_at")
	enc.Str(e.PlacedAt.UTC().Format(time.RFC3339Nano))
	enc.ObjEnd()

	return outbox.Message{
		ID:        e.EventID,
		Topic:     TopicOrderPlaced,
		Key:       e.OrderID,
		Payload:   enc.Bytes(),
		CreatedAt: e.PlacedAt,
	}
}
