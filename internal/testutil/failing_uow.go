package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/sprout/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth ExecContext
// call within a transaction. This enables rollback integration tests by
// simulating failures at precise points in multi-write operations.
//
// ExecContext calls are counted starting at 1. QueryContext and QueryRowContext
// are not counted (reads pass through normally).
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	var count atomic.Int32
	return runWrapped(ctx, u.DB, fn, func(args []any) bool {
		return count.Add(1) == u.FailOn
	}, u.Err)
}

// FailForArgUoW fails every ExecContext whose arguments contain Arg, so a
// batch can be made to fail for one user while the others commit.
type FailForArgUoW struct {
	DB  *sql.DB
	Arg string
	Err error
}

func (u *FailForArgUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return runWrapped(ctx, u.DB, fn, func(args []any) bool {
		for _, a := range args {
			if s, ok := a.(string); ok && s == u.Arg {
				return true
			}
		}
		return false
	}, u.Err)
}

func runWrapped(ctx context.Context, database *sql.DB, fn func(ctx context.Context, tx db.DBTX) error, fail func([]any) bool, injected error) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingExec{DBTX: tx, fail: fail, err: injected}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingExec struct {
	db.DBTX
	fail func(args []any) bool
	err  error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.fail(args) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
