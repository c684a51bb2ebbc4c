package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ssto/internal/request/models"
	"ssto/pkg/platform/sentinel"
	txcontext "ssto/pkg/platform/tx"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var requestColumns = []string{
	"id", "vessel_name", "mmsi", "imo_number", "terminal_id", "planned_test_date", "test_date",
	"status", "linked_signal_id", "created_at", "updated_at",
}

// PostgresStore persists test requests. This store is pure I/O; lifecycle
// rules live in the models and service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, r *models.TestRequest) error {
	query, args, err := psql.Insert("test_requests").
		Columns(requestColumns[1:]...).
		Values(
			r.VesselName, r.MMSI, r.IMONumber, r.TerminalID, r.PlannedTestDate, r.TestDate,
			string(r.Status), nullID(r.LinkedSignalID), r.CreatedAt, r.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert request: %w", err)
	}
	if err := txcontext.Or(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&r.ID); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.TestRequest, error) {
	query, args, err := psql.Select(requestColumns...).From("test_requests").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find request: %w", err)
	}
	r, err := scanRequest(txcontext.Or(ctx, s.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("request %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) FindEligibleCandidates(ctx context.Context) ([]*models.TestRequest, error) {
	return s.List(ctx, models.EligibleStatuses...)
}

func (s *PostgresStore) List(ctx context.Context, statuses ...models.Status) ([]*models.TestRequest, error) {
	builder := psql.Select(requestColumns...).From("test_requests").OrderBy("id")
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, st := range statuses {
			names[i] = string(st)
		}
		builder = builder.Where(sq.Expr("status = ANY(?)", pq.Array(names)))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests: %w", err)
	}
	rows, err := txcontext.Or(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []*models.TestRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, expected, next models.Status, at time.Time) error {
	query, args, err := psql.Update("test_requests").
		Set("status", string(next)).
		Set("updated_at", at).
		Where(sq.Eq{"id": id, "status": string(expected)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update request status: %w", err)
	}
	return s.execCAS(ctx, id, "update request status", query, args)
}

func (s *PostgresStore) SetLinkedSignal(ctx context.Context, requestID, signalID int64) error {
	query, args, err := psql.Update("test_requests").
		Set("linked_signal_id", signalID).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set linked signal: %w", err)
	}
	return s.execCAS(ctx, requestID, "set linked signal", query, args)
}

func (s *PostgresStore) ClearLinkedSignal(ctx context.Context, requestID, signalID int64) error {
	query, args, err := psql.Update("test_requests").
		Set("linked_signal_id", nil).
		Where(sq.Eq{"id": requestID, "linked_signal_id": signalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear linked signal: %w", err)
	}
	if _, err := txcontext.Or(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear linked signal: %w", err)
	}
	return nil
}

// execCAS runs a conditional update and distinguishes a missing row from a
// row whose state no longer matches.
func (s *PostgresStore) execCAS(ctx context.Context, id int64, op, query string, args []any) error {
	db := txcontext.Or(ctx, s.db)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if rows > 0 {
		return nil
	}
	var exists bool
	if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM test_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check request exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("request %d: %w", id, sentinel.ErrNotFound)
	}
	return fmt.Errorf("%s: request %d: %w", op, id, sentinel.ErrConflict)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*models.TestRequest, error) {
	var (
		r       models.TestRequest
		status  string
		planned sql.NullTime
		test    sql.NullTime
		linked  sql.NullInt64
	)
	if err := row.Scan(
		&r.ID, &r.VesselName, &r.MMSI, &r.IMONumber, &r.TerminalID, &planned, &test,
		&status, &linked, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.Status = models.Status(status)
	r.LinkedSignalID = linked.Int64
	if planned.Valid {
		r.PlannedTestDate = &planned.Time
	}
	if test.Valid {
		r.TestDate = &test.Time
	}
	return &r, nil
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
