package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	events []Event
}

func (f *fakeStore) Append(_ context.Context, event Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStore) ListByRequest(_ context.Context, requestID string) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestPublisher_EmitStampsTimestampAndAppends(t *testing.T) {
	store := &fakeStore{}
	pub := NewPublisher(store)

	err := pub.Emit(context.Background(), Event{RequestID: "req-1", Outcome: "ok", RegistrationCount: 3})
	require.NoError(t, err)

	require.Len(t, store.events, 1)
	assert.False(t, store.events[0].Timestamp.IsZero())
	assert.Equal(t, "ok", store.events[0].Outcome)
}

func TestPublisher_ListFiltersByRequestID(t *testing.T) {
	store := &fakeStore{}
	pub := NewPublisher(store)

	require.NoError(t, pub.Emit(context.Background(), Event{RequestID: "req-1"}))
	require.NoError(t, pub.Emit(context.Background(), Event{RequestID: "req-2"}))

	events, err := pub.List(context.Background(), "req-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "req-1", events[0].RequestID)
}

func TestWorker_DrainsInboxUntilClosed(t *testing.T) {
	store := &fakeStore{}
	inbox := make(chan Event, 2)
	inbox <- Event{RequestID: "req-a"}
	inbox <- Event{RequestID: "req-b"}
	close(inbox)

	w := NewWorker(store, inbox)
	err := w.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, store.events, 2)
}
