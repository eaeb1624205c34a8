package pgxstorage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var snapshotTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

type TransactionsManager struct {
	storage *DBStorage
}

func NewTransactionsManager(storage *DBStorage) *TransactionsManager {
	return &TransactionsManager{
		storage: storage,
	}
}

// DoWithSnapshot runs f inside a read-only repeatable-read transaction, so an
// order and its items are read from the same snapshot.
func (tm *TransactionsManager) DoWithSnapshot(ctx context.Context, f func(ctx context.Context) error) error {
	txCtx, tx, err := tm.storage.withTransaction(ctx, snapshotTxOptions)
	if err != nil {
		return err
	}
	return finishTransaction(ctx, tx, f(txCtx))
}

// finishTransaction commits tx when fErr is nil and rolls it back otherwise.
func finishTransaction(ctx context.Context, tx pgx.Tx, fErr error) error {
	if fErr == nil {
		commitErr := tx.Commit(ctx)
		if commitErr == nil {
			return nil
		}
		fErr = fmt.Errorf("transaction commit failed: %w", commitErr)
	}
	// rollback after a failed commit is a no-op returning ErrTxClosed
	if rollbackErr := tx.Rollback(context.Background()); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		return errors.Join(fErr, fmt.Errorf("transaction rollback failed: %w", rollbackErr))
	}
	return fErr
}
