package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mutugading/catalog-service/internal/domain/shared"
)

// txKey is the context key carrying the open transaction.
type txKey struct{}

// txFromContext retrieves the transaction from context, or nil.
func txFromContext(ctx context.Context) *sql.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return nil
}

// contextWithTx returns a context with the transaction attached.
func contextWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// UnitOfWork implements shared.UnitOfWork on top of database/sql
// transactions. The callback's context carries the open transaction, so any
// repository (and the audit logger) called with it joins the same
// transaction. Commit on clean return, rollback on error or panic.
type UnitOfWork struct {
	db *DB
}

// NewUnitOfWork creates a unit of work bound to the connection pool.
func NewUnitOfWork(db *DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

// Do runs fn inside one transaction.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(contextWithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(
				fmt.Errorf("rollback failed: %w", rbErr),
				err,
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
