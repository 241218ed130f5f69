package app

import (
	"context"
	"errors"

	"github.com/example/compass/internal/ports/primary"
	"github.com/example/compass/internal/ports/secondary"
)

// withinTx runs fn inside a transaction when a Transactor is configured.
// Without one, each save in fn commits on its own.
// A CascadeError leaving a transaction that rolled back is marked RolledBack.
func withinTx(ctx context.Context, tx secondary.Transactor, fn func(ctx context.Context) error) error {
	if tx == nil {
		return fn(ctx)
	}
	err := tx.WithinTx(ctx, fn)
	var cascadeErr *primary.CascadeError
	if errors.As(err, &cascadeErr) && !errors.Is(err, secondary.ErrRollbackFailed) {
		cascadeErr.RolledBack = true
	}
	return err
}

// lookupErr turns a not-found error into (false, nil) so guards can report it.
func lookupErr(err error) (found bool, _ error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, secondary.ErrNotFound) {
		return false, nil
	}
	return false, err
}
