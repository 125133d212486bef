package database

import (
	"context"
	"database/sql"
	"fmt"
)

// TxFunc is executed inside a transaction opened by WithTx.
type TxFunc func(tx *sql.Tx) error

// WithTx runs fn in a transaction.  It rolls back when fn returns an error or
// panics and commits otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
