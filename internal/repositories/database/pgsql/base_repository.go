package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saldohq/saldo-backend/internal/apperrors"
)

// txKey is the context key under which an open pgx transaction travels.
type txKey struct{}

// DBTX is the subset of pgx operations repositories use. Both *pgxpool.Pool
// and pgx.Tx satisfy it, so every query transparently joins the transaction
// carried in the context when one is open.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides the connection handle and transaction plumbing
// shared by all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// db returns the transaction from the context when inside a unit of work,
// and the pool otherwise.
func (r *BaseRepository) db(ctx context.Context) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// WithTx runs fn inside a single database transaction. A nested call joins
// the transaction already carried in the context instead of opening a second
// one, so compound operations (reconciliation posting through the ledger
// engine) stay one atomic unit.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Rollback after commit is a harmless no-op.
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
