// Package repo contains all database access logic for the travel journal.
// Each collection has its own file with an interface and a Postgres
// implementation. Every read and write is scoped to the owning user.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// psql builds Postgres-flavoured statements ($1, $2... placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ownedByUser restricts a child-collection select (aliased "r") to records
// whose adventure belongs to userID.
func ownedByUser(b sq.SelectBuilder, userID uuid.UUID) sq.SelectBuilder {
	return b.
		Join("adventures a ON a.id = r.adventure_id").
		Where(sq.Eq{"a.user_id": userID})
}

// prefixed qualifies every column of a comma-separated list with alias.
func prefixed(alias, columns string) string {
	cols := strings.Split(columns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

// ownedAdventure is the predicate used by child-collection writes: the row's
// adventure must belong to the caller.
const ownedAdventure = `adventure_id IN (SELECT id FROM adventures WHERE user_id = @user_id)`

// queryAll runs a built select and scans every row with scan.
// Always returns a non-nil slice.
func queryAll[T any](ctx context.Context, d db, op string, b sq.SelectBuilder, scan func(scanner) (T, error)) ([]T, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}

	rows, err := d.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// execOne runs a write that must touch exactly one row, mapping zero rows
// to domain.ErrNotFound.
func execOne(ctx context.Context, d db, op, q string, args pgx.NamedArgs) error {
	tag, err := d.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

// noRows maps pgx.ErrNoRows to domain.ErrNotFound.
func noRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// uniqueViolation turns a Postgres unique-constraint error into a field
// validation error so handlers answer 422 instead of 500.
func uniqueViolation(err error, field, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.FieldErrors{field: msg}
	}
	return err
}

// optionalUUID converts a nullable UUID column.
func optionalUUID(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}

// dateArg converts a "2006-01-02" calendar date into a DATE parameter.
// Nil becomes NULL.
func dateArg(s *string) (pgtype.Date, error) {
	if s == nil {
		return pgtype.Date{}, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return pgtype.Date{}, fmt.Errorf("%w: start_date: %v", domain.ErrValidation, err)
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}

// optionalDate converts a nullable DATE column into its calendar string.
func optionalDate(d pgtype.Date) *string {
	if !d.Valid {
		return nil
	}
	s := d.Time.Format("2006-01-02")
	return &s
}
