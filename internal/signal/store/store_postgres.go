package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"ssto/internal/signal/models"
	"ssto/pkg/platform/sentinel"
	txcontext "ssto/pkg/platform/tx"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var signalColumns = []string{
	"id", "terminal_id", "mmsi", "imo", "vessel_name", "signal_type", "received_at",
	"is_test_signal", "metadata", "status", "linked_request_id", "created_at",
}

// PostgresStore persists signals and link decisions. Writes join the
// transaction carried by ctx when there is one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, sig *models.Signal) error {
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("create signal: %w", err)
	}
	metadata, err := json.Marshal(sig.Metadata)
	if err != nil {
		return fmt.Errorf("marshal signal metadata: %w", err)
	}
	if sig.CreatedAt.IsZero() {
		sig.CreatedAt = time.Now()
	}

	query, args, err := psql.Insert("signals").
		Columns(signalColumns[1:]...).
		Values(
			sig.TerminalID, sig.MMSI, sig.IMO, sig.VesselName, sig.SignalType, sig.ReceivedAt,
			sig.IsTestSignal, metadata, string(sig.Status), nullID(sig.LinkedRequestID), sig.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert signal: %w", err)
	}
	if err := txcontext.Or(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&sig.ID); err != nil {
		return fmt.Errorf("insert signal: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Signal, error) {
	query, args, err := psql.Select(signalColumns...).From("signals").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find signal: %w", err)
	}
	sig, err := scanSignal(txcontext.Or(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("signal %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find signal: %w", err)
	}
	return sig, nil
}

// SetStatus is a compare-and-set on status. Zero rows affected means the
// signal is missing or has moved on; a follow-up read tells which.
func (s *PostgresStore) SetStatus(ctx context.Context, id int64, expected, next models.Status, requestID int64) error {
	if next.IsLinked() != (requestID != 0) {
		return fmt.Errorf("set signal %d to %s with request %d: %w", id, next, requestID, sentinel.ErrInvalidState)
	}
	query, args, err := psql.Update("signals").
		Set("status", string(next)).
		Set("linked_request_id", nullID(requestID)).
		Where(sq.Eq{"id": id, "status": string(expected)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set signal status: %w", err)
	}
	db := txcontext.Or(ctx, s.db)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set signal status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set signal status rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM signals WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check signal exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("signal %d: %w", id, sentinel.ErrNotFound)
	}
	return fmt.Errorf("signal %d not in %s: %w", id, expected, sentinel.ErrConflict)
}

func (s *PostgresStore) AppendLinkDecision(ctx context.Context, d *models.LinkDecision) error {
	query, args, err := psql.Insert("link_decisions").
		Columns("id", "signal_id", "request_id", "mode", "actor", "decided_at", "overridden", "previous_request_id").
		Values(d.ID, d.SignalID, d.RequestID, string(d.Mode), d.Actor, d.Timestamp, d.Overridden, nullID(d.PreviousRequestID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert link decision: %w", err)
	}
	if _, err := txcontext.Or(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert link decision: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListLinkDecisions(ctx context.Context, signalID int64) ([]*models.LinkDecision, error) {
	query, args, err := psql.
		Select("id", "signal_id", "request_id", "mode", "actor", "decided_at", "overridden", "previous_request_id").
		From("link_decisions").
		Where(sq.Eq{"signal_id": signalID}).
		OrderBy("decided_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list link decisions: %w", err)
	}
	rows, err := txcontext.Or(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list link decisions: %w", err)
	}
	defer rows.Close()

	var out []*models.LinkDecision
	for rows.Next() {
		var (
			d    models.LinkDecision
			mode string
			prev sql.NullInt64
		)
		if err := rows.Scan(&d.ID, &d.SignalID, &d.RequestID, &mode, &d.Actor, &d.Timestamp, &d.Overridden, &prev); err != nil {
			return nil, fmt.Errorf("scan link decision: %w", err)
		}
		d.Mode = models.LinkMode(mode)
		d.PreviousRequestID = prev.Int64
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate link decisions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.Signal, error) {
	query, args, err := psql.Select(signalColumns...).
		From("signals").
		Where(sq.Eq{"status": string(status)}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list signals: %w", err)
	}
	rows, err := txcontext.Or(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list signals: %w", err)
	}
	defer rows.Close()

	var out []*models.Signal
	for rows.Next() {
		sig, err := scanSignal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		out = append(out, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signals: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	query, args, err := psql.Select("status", "COUNT(*)").From("signals").GroupBy("status").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count signals: %w", err)
	}
	rows, err := txcontext.Or(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count signals: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Status]int, 3)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan signal count: %w", err)
		}
		counts[models.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signal counts: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSignal(row rowScanner) (*models.Signal, error) {
	var (
		sig      models.Signal
		status   string
		metadata []byte
		linked   sql.NullInt64
	)
	if err := row.Scan(
		&sig.ID, &sig.TerminalID, &sig.MMSI, &sig.IMO, &sig.VesselName, &sig.SignalType, &sig.ReceivedAt,
		&sig.IsTestSignal, &metadata, &status, &linked, &sig.CreatedAt,
	); err != nil {
		return nil, err
	}
	sig.Status = models.Status(status)
	sig.LinkedRequestID = linked.Int64
	if len(metadata) > 0 && string(metadata) != "null" {
		if err := json.Unmarshal(metadata, &sig.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal signal metadata: %w", err)
		}
	}
	return &sig, nil
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
