package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner executes a function inside a database transaction. The transaction
// is stashed in the context so repositories sharing the context join it; this
// is how an appointment cancellation and its invoice cancellation commit or
// roll back together.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// serializationRetries bounds internal retries of transactions aborted by a
// concurrent write conflict before the failure is surfaced to the caller.
const serializationRetries = 3

type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// PgTxRunner runs functions inside serializable Postgres transactions.
// Booking creation relies on this isolation level: the duplicate check, the
// overlap check and the insert must execute as one atomic unit or two
// concurrent requests could both pass validation.
type PgTxRunner struct {
	pool *pgxpool.Pool
}

func NewPgTxRunner(pool *pgxpool.Pool) *PgTxRunner {
	return &PgTxRunner{pool: pool}
}

func (r *PgTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= serializationRetries; attempt++ {
		err = r.runOnce(ctx, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

func (r *PgTxRunner) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	// Prefer the tenant-scoped connection so the transaction sees the
	// tenant's search_path.
	var beginner txBeginner = r.pool
	if conn := ConnFromContext(ctx); conn != nil {
		beginner = conn
	}

	tx, err := beginner.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// TxFromContext retrieves the active transaction from context, if any.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey).(pgx.Tx)
	return tx
}

// isSerializationFailure reports whether err is a transient conflict the
// transaction runner may retry: a serialization failure (40001) or a deadlock
// (40P01). Domain conflicts are never retried.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
