package uow

import (
	"context"
	"log/slog"

	"slotbooking/internal/infra/db"
	"slotbooking/internal/pkg/errs"
	"slotbooking/internal/usecase/commands"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PgxTxManager struct {
	pool *pgxpool.Pool
}

func NewPgxTxManager(pool *pgxpool.Pool) commands.TxManager {
	return &PgxTxManager{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; the
// conditional status updates carry the race arbitration themselves.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr != pgx.ErrTxClosed {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}
