// Package outbox persists audit events in the same transaction as the link
// they describe and relays them to Kafka afterwards.
package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"ssto/internal/audit"
	txcontext "ssto/pkg/platform/tx"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const aggregateSignal = "signal"

// Entry is one outbox row. Payload is the JSON encoded audit.Event.
type Entry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// PostgresStore implements audit.Store on the outbox table.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// Append writes the event to the outbox using the transaction in ctx, if any.
func (s *PostgresStore) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query, args, err := psql.Insert("outbox").
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		Values(uuid.New(), aggregateSignal, strconv.FormatInt(event.SignalID, 10), string(event.Action), payload, s.now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build outbox insert: %w", err)
	}
	if _, err := txcontext.Or(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// Claim locks up to limit unpublished entries, oldest first, and hands them
// to fn. Entries are marked published only if fn succeeds; otherwise the
// transaction rolls back and they are picked up again later. Concurrent
// relays skip each other's rows.
func (s *PostgresStore) Claim(ctx context.Context, limit int, fn func(ctx context.Context, entries []Entry) error) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin outbox claim: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := psql.Select("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		From("outbox").
		Where(sq.Eq{"published_at": nil}).
		OrderBy("created_at", "id").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build outbox claim: %w", err)
	}
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("claim outbox entries: %w", err)
	}
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate outbox entries: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	if err := fn(ctx, entries); err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	query, args, err = psql.Update("outbox").
		Set("published_at", s.now()).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build outbox publish mark: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("mark outbox entries published: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit outbox claim: %w", err)
	}
	return len(entries), nil
}

// Pending counts unpublished entries.
func (s *PostgresStore) Pending(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("outbox").Where(sq.Eq{"published_at": nil}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build outbox count: %w", err)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count outbox entries: %w", err)
	}
	return n, nil
}
