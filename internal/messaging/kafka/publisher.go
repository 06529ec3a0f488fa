// Package kafka publishes outbox messages to Kafka.
package kafka

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/xenking/kart-pricing/internal/outbox"
)

var _ outbox.Publisher = (*Publisher)(nil)

// messageWriter is the subset of *kafkago.Writer used by Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes outbox messages to the topic named by each message.
type Publisher struct {
	w messageWriter
}

// NewPublisher creates a Publisher for the given brokers. Messages with the
// same key land on the same partition.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{w: &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}}
}

// Publish writes msgs in one batch. It fails if any message is rejected.
func (p *Publisher) Publish(ctx context.Context, msgs ...outbox.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafkago.Message, len(msgs))
	for i, m := range msgs {
		out[i] = toKafka(m)
	}
	if err := p.w.WriteMessages(ctx, out...); err != nil {
		return errors.Wrap(err, "write messages")
	}
	return nil
}

// Close flushes pending writes and releases connections.
func (p *Publisher) Close() error {
	return p.w.Close()
}

func toKafka(m outbox.Message) kafkago.Message {
	return kafkago.Message{
		Topic: m.Topic,
		Key:   []byte(m.Key),
		Value: m.Payload,
		Time:  m.CreatedAt,
		Headers: []kafkago.Header{
			{Key: "message-id", Value: []byte(m.ID)},
		},
	}
}
