package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/compass/internal/ports/secondary"
)

type txKey struct{}

// querier is the subset of *sql.DB and *sql.Tx used by repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// TxManager implements secondary.Transactor with SQLite transactions.
type TxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx runs fn in a transaction that commits when fn returns nil.
// A nested call joins the outer transaction.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (%w: %v)", err, secondary.ErrRollbackFailed, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// notFound wraps secondary.ErrNotFound with the entity that was missing.
func notFound(kind, id string) error {
	return fmt.Errorf("%s %s %w", kind, id, secondary.ErrNotFound)
}

// formatNullTime renders a nullable timestamp, empty when null.
func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(time.RFC3339)
}

// setDeleted sets or clears deleted_at on one live or deleted row of table.
func setDeleted(ctx context.Context, q querier, table, kind, id string, deleted bool) error {
	query := "UPDATE " + table + " SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if deleted {
		query = "UPDATE " + table + " SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	}

	result, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", kind, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound(kind, id)
	}
	return nil
}

// Ensure TxManager implements the interface
var _ secondary.Transactor = (*TxManager)(nil)
