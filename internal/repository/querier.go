package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx implemented by both *pgxpool.Pool and pgx.Tx.
// Mutating repository methods take a Querier so services can group several
// writes into one transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type TxRunner struct {
	db *pgxpool.Pool
}

func NewTxRunner(db *pgxpool.Pool) *TxRunner {
	return &TxRunner{db: db}
}

// RunInTx executes fn inside a database transaction. The transaction is
// rolled back when fn returns an error, committed otherwise.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(q Querier) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(tx)
	})
}
