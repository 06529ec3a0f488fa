package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/kart-pricing/internal/outbox"
)

type fakeWriter struct {
	written []kafkago.Message
	calls   int
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.calls++
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{w: w}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := p.Publish(context.Background(),
		outbox.Message{ID: "m1", Topic: "order.placed", Key: "o1", Payload: []byte(`{"a":1}`), CreatedAt: at},
		outbox.Message{ID: "m2", Topic: "order.placed", Key: "o2", Payload: []byte(`{}`), CreatedAt: at},
	)
	require.NoError(t, err)

	require.Len(t, w.written, 2)
	assert.Equal(t, 1, w.calls, "one batch per publish")
	got := w.written[0]
	assert.Equal(t, "order.placed", got.Topic)
	assert.Equal(t, []byte("o1"), got.Key)
	assert.Equal(t, []byte(`{"a":1}`), got.Value)
	assert.Equal(t, at, got.Time)
	assert.Equal(t, []kafkago.Header{{Key: "message-id", Value: []byte("m1")}}, got.Headers)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_Empty(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{w: w}

	require.NoError(t, p.Publish(context.Background()))
	assert.Zero(t, w.calls)
}

func TestPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &Publisher{w: w}

	err := p.Publish(context.Background(), outbox.Message{ID: "m1", Topic: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write messages")
}
