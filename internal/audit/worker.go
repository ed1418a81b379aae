package audit

import "context"

// Worker consumes audit events from a channel and persists them, keeping
// the request path from blocking on a database write.
type Worker struct {
	store Store
	inbox <-chan Event
}

// NewWorker builds a Worker draining inbox into store.
func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

// Run blocks, persisting events until ctx is cancelled or inbox closes.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}
