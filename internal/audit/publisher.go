package audit

import (
	"context"
	"time"
)

// Store appends events. Append runs inside the caller's transaction when the
// context carries one.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher is fail-closed: an event that cannot be stored fails the
// operation that produced it.
type Publisher struct {
	store Store
	now   func() time.Time
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store, now: time.Now}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	return p.store.Append(ctx, event)
}
