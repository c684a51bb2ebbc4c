//go:build integration

package outbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"ssto/internal/audit"
	"ssto/internal/audit/outbox"
	"ssto/internal/platform/config"
	"ssto/internal/platform/kafka"
	"ssto/internal/platform/postgres"
	"ssto/pkg/testutil/containers"
)

type OutboxSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *outbox.PostgresStore
}

func TestOutboxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OutboxSuite))
}

func (s *OutboxSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = outbox.NewPostgres(s.postgres.DB)
}

func (s *OutboxSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "outbox"))
}

func event(signalID int64, action audit.Action) audit.Event {
	return audit.Event{
		Action:     action,
		Timestamp:  time.Now().UTC(),
		DecisionID: uuid.New(),
		SignalID:   signalID,
		RequestID:  7,
		Mode:       "AUTO",
	}
}

func (s *OutboxSuite) TestAppendJoinsTransaction() {
	ctx := context.Background()
	runner := postgres.NewTxRunner(s.postgres.DB)

	err := runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Append(ctx, event(1, audit.ActionSignalAutoLinked)); err != nil {
			return err
		}
		return errors.New("link rejected")
	})
	s.Require().Error(err)

	pending, err := s.store.Pending(ctx)
	s.Require().NoError(err)
	s.Zero(pending)

	s.Require().NoError(runner.RunInTx(ctx, func(ctx context.Context) error {
		return s.store.Append(ctx, event(1, audit.ActionSignalAutoLinked))
	}))
	pending, err = s.store.Pending(ctx)
	s.Require().NoError(err)
	s.Equal(1, pending)
}

func (s *OutboxSuite) TestClaimMarksPublishedOnlyOnSuccess() {
	ctx := context.Background()
	s.Require().NoError(s.store.Append(ctx, event(1, audit.ActionSignalAutoLinked)))
	s.Require().NoError(s.store.Append(ctx, event(2, audit.ActionSignalManuallyLinked)))

	_, err := s.store.Claim(ctx, 10, func(context.Context, []outbox.Entry) error {
		return errors.New("broker down")
	})
	s.Require().Error(err)
	pending, err := s.store.Pending(ctx)
	s.Require().NoError(err)
	s.Equal(2, pending)

	var seen []outbox.Entry
	n, err := s.store.Claim(ctx, 10, func(_ context.Context, entries []outbox.Entry) error {
		seen = entries
		return nil
	})
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Require().Len(seen, 2)
	s.Equal("1", seen[0].AggregateID)
	s.Equal(string(audit.ActionSignalAutoLinked), seen[0].EventType)

	var decoded audit.Event
	s.Require().NoError(json.Unmarshal(seen[1].Payload, &decoded))
	s.Equal(int64(2), decoded.SignalID)

	pending, err = s.store.Pending(ctx)
	s.Require().NoError(err)
	s.Zero(pending)
}

func (s *OutboxSuite) TestRelayPublishesToKafka() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	broker := containers.GetManager().GetRedpanda(s.T())
	topic := "ssto.signal-links." + uuid.NewString()[:8]
	cfg := config.Kafka{
		Brokers:     []string{broker.Broker},
		ClientID:    "ssto-test",
		Topic:       topic,
		DialTimeout: 10 * time.Second,
	}
	client, err := kafka.NewClient(cfg)
	s.Require().NoError(err)
	defer client.Close()
	s.Require().NoError(kafka.EnsureTopic(ctx, client, topic, 1, 1))

	s.Require().NoError(s.store.Append(ctx, event(11, audit.ActionSignalAutoLinked)))
	s.Require().NoError(s.store.Append(ctx, event(11, audit.ActionSignalLinkOverridden)))

	relay := outbox.NewRelay(s.store, outbox.NewKafkaSink(client, topic), outbox.WithBatchSize(1))
	s.Require().NoError(relay.Drain(ctx))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var records []*kgo.Record
	for len(records) < 2 {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			records = append(records, r)
		})
	}
	s.Equal("11", string(records[0].Key))
	s.Equal("11", string(records[1].Key))

	headers := map[string]string{}
	for _, h := range records[1].Headers {
		headers[h.Key] = string(h.Value)
	}
	s.Equal(string(audit.ActionSignalLinkOverridden), headers["event_type"])

	pending, err := s.store.Pending(ctx)
	s.Require().NoError(err)
	s.Zero(pending)
}
