package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/kart-pricing/internal/outbox"
)

const (
	insertOutboxSQL = `INSERT INTO outbox (id, topic, key, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	pendingOutboxSQL = `SELECT id, topic, key, payload, created_at
		FROM outbox WHERE dispatched_at IS NULL
		ORDER BY created_at LIMIT $1`

	markDispatchedSQL = `UPDATE outbox SET dispatched_at = now()
		WHERE id = ANY($1) AND dispatched_at IS NULL`

	countPendingSQL = `SELECT count(*) FROM outbox WHERE dispatched_at IS NULL`
)

var _ outbox.Store = (*OutboxStore)(nil)

// OutboxStore reads and acknowledges outbox messages.
type OutboxStore struct {
	pool *pgxpool.Pool
}

// NewOutboxStore returns an OutboxStore that uses the given pool.
func NewOutboxStore(pool *pgxpool.Pool) *OutboxStore {
	return &OutboxStore{pool: pool}
}

// Pending returns up to limit undispatched messages, oldest first.
func (s *OutboxStore) Pending(ctx context.Context, limit int) ([]outbox.Message, error) {
	rows, err := s.pool.Query(ctx, pendingOutboxSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("listing pending outbox messages: %w", err)
	}
	msgs, err := pgx.CollectRows(rows, scanOutboxMessage)
	if err != nil {
		return nil, fmt.Errorf("listing pending outbox messages: %w", err)
	}
	return msgs, nil
}

// MarkDispatched records that the messages were published. Already
// dispatched ids are ignored.
func (s *OutboxStore) MarkDispatched(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, markDispatchedSQL, ids); err != nil {
		return fmt.Errorf("marking outbox messages dispatched: %w", err)
	}
	return nil
}

// Backlog returns the number of undispatched messages.
func (s *OutboxStore) Backlog(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, countPendingSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting pending outbox messages: %w", err)
	}
	return n, nil
}

func insertOutboxMessage(ctx context.Context, tx pgx.Tx, m outbox.Message) error {
	_, err := tx.Exec(ctx, insertOutboxSQL, m.ID, m.Topic, m.Key, m.Payload, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting outbox message %q: %w", m.ID, err)
	}
	return nil
}

func scanOutboxMessage(row pgx.CollectableRow) (outbox.Message, error) {
	var m outbox.Message
	err := row.Scan(&m.ID, &m.Topic, &m.Key, &m.Payload, &m.CreatedAt)
	return m, err
}
