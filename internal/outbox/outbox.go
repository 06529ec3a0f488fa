// Package outbox delivers domain events recorded in the same transaction as
// the state change that produced them.
package outbox

import (
	"context"
	"time"
)

// Message is an event waiting to be published.
type Message struct {
	ID        string
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// Store persists undelivered messages.
type Store interface {
	// Pending returns up to limit undelivered messages, oldest first.
	Pending(ctx context.Context, limit int) ([]Message, error)
	// MarkDispatched records successful delivery of the given ids.
	MarkDispatched(ctx context.Context, ids []string) error
}

// Publisher sends messages to a broker.
type Publisher interface {
	Publish(ctx context.Context, msgs ...Message) error
}
