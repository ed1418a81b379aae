package audit

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rodeovalidate/pkg/platform/tx"
)

// Store persists Events. Store is the seam tests swap for an in-memory
// fake; PgxStore is the production implementation.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByRequest(ctx context.Context, requestID string) ([]Event, error)
}

// PgxStore persists Events to Postgres via pgx. A transaction placed on
// ctx by pkg/platform/tx is used in place of the pool, so a validation
// run and its audit record can commit atomically.
type PgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore builds a PgxStore backed by pool.
func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

// execer is the subset of pgx.Tx / pgxpool.Pool this store needs.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *PgxStore) conn(ctx context.Context) execer {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.pool
}

func (s *PgxStore) Append(ctx context.Context, event Event) error {
	_, err := s.conn(ctx).Exec(ctx, `
		INSERT INTO validation_audit_log
			(occurred_at, request_id, dbf_path, registration_count, issue_count, outcome, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.Timestamp, event.RequestID, event.DBFPath,
		event.RegistrationCount, event.IssueCount, event.Outcome, event.Reason,
	)
	return err
}

func (s *PgxStore) ListByRequest(ctx context.Context, requestID string) ([]Event, error) {
	rows, err := s.conn(ctx).Query(ctx, `
		SELECT occurred_at, request_id, dbf_path, registration_count, issue_count, outcome, reason
		FROM validation_audit_log
		WHERE request_id = $1
		ORDER BY occurred_at ASC`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Timestamp, &e.RequestID, &e.DBFPath,
			&e.RegistrationCount, &e.IssueCount, &e.Outcome, &e.Reason); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
