package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherStampsMissingTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	require.NoError(t, p.Emit(context.Background(), Event{Action: ActionSignalAutoLinked, SignalID: 7}))

	events, err := store.ListBySignal(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}

func TestPublisherKeepsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, NewPublisher(store).Emit(context.Background(), Event{SignalID: 1, Timestamp: at}))
	require.NoError(t, NewPublisher(store).Emit(context.Background(), Event{SignalID: 2, Timestamp: at}))

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, at, all[0].Timestamp)

	one, err := store.ListBySignal(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
