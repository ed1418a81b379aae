package audit

import (
	"context"
	"time"
)

// Publisher captures structured audit events. It is append-only and uses
// the storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

// NewPublisher builds a Publisher backed by store.
func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit records one audit event, stamping the timestamp if the caller left
// it zero.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.store.Append(ctx, event)
}

// List returns every audit event recorded under requestID, in the order
// they were appended.
func (p *Publisher) List(ctx context.Context, requestID string) ([]Event, error) {
	return p.store.ListByRequest(ctx, requestID)
}
