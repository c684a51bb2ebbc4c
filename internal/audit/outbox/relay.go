package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ssto/pkg/platform/circuit"
)

const (
	defaultRelayInterval = time.Second
	defaultRelayBatch    = 100
)

// Claimer hands out unpublished entries. See PostgresStore.Claim.
type Claimer interface {
	Claim(ctx context.Context, limit int, fn func(ctx context.Context, entries []Entry) error) (int, error)
}

// Sink delivers a batch. A batch is delivered at least once.
type Sink interface {
	Publish(ctx context.Context, entries []Entry) error
}

// Relay polls the outbox and forwards entries to a sink until its context
// is cancelled.
type Relay struct {
	outbox   Claimer
	sink     Sink
	interval time.Duration
	batch    int
	logger   *slog.Logger
	breaker  *circuit.Breaker
}

type RelayOption func(*Relay)

func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func WithLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

// WithBreaker pauses relaying while the sink keeps failing.
func WithBreaker(b *circuit.Breaker) RelayOption {
	return func(r *Relay) {
		r.breaker = b
	}
}

func NewRelay(outbox Claimer, sink Sink, opts ...RelayOption) *Relay {
	r := &Relay{
		outbox:   outbox,
		sink:     sink,
		interval: defaultRelayInterval,
		batch:    defaultRelayBatch,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Relay) tick(ctx context.Context) {
	if r.breaker != nil && !r.breaker.Allow() {
		return
	}
	err := r.Drain(ctx)
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
		if r.breaker != nil {
			if _, change := r.breaker.RecordFailure(); change.Opened {
				r.logger.WarnContext(ctx, "outbox relay paused", "breaker", r.breaker.Name())
			}
		}
		return
	}
	if r.breaker != nil {
		if _, change := r.breaker.RecordSuccess(); change.Closed {
			r.logger.InfoContext(ctx, "outbox relay resumed", "breaker", r.breaker.Name())
		}
	}
}

// Drain forwards full batches until the outbox is empty or a batch fails.
func (r *Relay) Drain(ctx context.Context) error {
	for {
		n, err := r.outbox.Claim(ctx, r.batch, r.sink.Publish)
		if err != nil {
			return err
		}
		if n > 0 {
			r.logger.DebugContext(ctx, "outbox entries relayed", "count", n)
		}
		if n < r.batch {
			return nil
		}
	}
}
