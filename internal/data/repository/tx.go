package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// querier is the part of a pool or a transaction the repositories use.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type txKey struct{}

// conn returns the transaction carried by ctx, or the pool.
func conn(ctx context.Context, db database.PgxIface) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

// TxManager runs a function inside one database transaction. Repository
// calls made with the ctx passed to fn join that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txManager struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTxManager(db database.PgxIface, log *zap.Logger) TxManager {
	return &txManager{
		db:  db,
		log: log.With(zap.String("repository", "tx")),
	}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// nested calls reuse the outer transaction
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		m.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			m.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		m.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
