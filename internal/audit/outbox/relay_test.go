package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"ssto/pkg/platform/circuit"
)

type fakeOutbox struct {
	mu        sync.Mutex
	pending   []Entry
	published []Entry
}

func (f *fakeOutbox) Claim(ctx context.Context, limit int, fn func(ctx context.Context, entries []Entry) error) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := min(limit, len(f.pending))
	if n == 0 {
		return 0, nil
	}
	batch := append([]Entry{}, f.pending[:n]...)
	if err := fn(ctx, batch); err != nil {
		return 0, err
	}
	f.pending = f.pending[n:]
	f.published = append(f.published, batch...)
	return n, nil
}

type recordingSink struct {
	batches [][]Entry
	err     error
}

func (s *recordingSink) Publish(_ context.Context, entries []Entry) error {
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, entries)
	return nil
}

func entries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{ID: uuid.New(), AggregateType: aggregateSignal, AggregateID: "1", EventType: "signal_auto_linked"}
	}
	return out
}

func TestRelayDrainForwardsAllBatches(t *testing.T) {
	box := &fakeOutbox{pending: entries(5)}
	sink := &recordingSink{}
	relay := NewRelay(box, sink, WithBatchSize(2))

	require.NoError(t, relay.Drain(context.Background()))

	assert.Len(t, sink.batches, 3)
	assert.Empty(t, box.pending)
	assert.Len(t, box.published, 5)
}

func TestRelayDrainKeepsEntriesWhenSinkFails(t *testing.T) {
	box := &fakeOutbox{pending: entries(3)}
	sink := &recordingSink{err: errors.New("broker down")}
	relay := NewRelay(box, sink)

	err := relay.Drain(context.Background())

	require.Error(t, err)
	assert.Len(t, box.pending, 3)
	assert.Empty(t, box.published)
}

func TestRelayRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRelay(&fakeOutbox{}, &recordingSink{}).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRelayTickPausesWhileBreakerOpen(t *testing.T) {
	ctx := context.Background()
	box := &fakeOutbox{pending: entries(2)}
	sink := &recordingSink{err: errors.New("broker down")}
	breaker := circuit.New("kafka", circuit.WithFailureThreshold(1), circuit.WithSuccessThreshold(1), circuit.WithCooldown(time.Hour))
	relay := NewRelay(box, sink, WithBreaker(breaker))

	relay.tick(ctx)
	require.True(t, breaker.IsOpen())

	sink.err = nil
	relay.tick(ctx)
	assert.Empty(t, sink.batches, "no publish attempts during cooldown")
	assert.Len(t, box.pending, 2)

	breaker.Reset()
	relay.tick(ctx)
	assert.Len(t, sink.batches, 1)
	assert.Empty(t, box.pending)
	assert.False(t, breaker.IsOpen())
}

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (p *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	p.records = append(p.records, rs...)
	results := make(kgo.ProduceResults, len(rs))
	for i, r := range rs {
		results[i] = kgo.ProduceResult{Record: r, Err: p.err}
	}
	return results
}

func TestKafkaSinkKeysBySignal(t *testing.T) {
	producer := &fakeProducer{}
	sink := NewKafkaSink(producer, "ssto.signal-links")
	batch := []Entry{{ID: uuid.New(), AggregateID: "42", EventType: "signal_manually_linked", Payload: []byte(`{}`)}}

	require.NoError(t, sink.Publish(context.Background(), batch))

	require.Len(t, producer.records, 1)
	rec := producer.records[0]
	assert.Equal(t, "ssto.signal-links", rec.Topic)
	assert.Equal(t, []byte("42"), rec.Key)
	assert.Equal(t, []byte(`{}`), rec.Value)
	assert.Equal(t, "event_type", rec.Headers[1].Key)
}

func TestKafkaSinkReturnsProduceError(t *testing.T) {
	sink := NewKafkaSink(&fakeProducer{err: errors.New("not leader")}, "t")

	err := sink.Publish(context.Background(), entries(1))

	assert.ErrorContains(t, err, "not leader")
}
