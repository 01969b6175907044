package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*db.SQLiteUnitOfWork, *sql.DB) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database), database
}

const insertUser = `INSERT INTO users (id, name, token_hash, created_at) VALUES (?, ?, ?, '2025-01-01T00:00:00Z')`

func userExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, database := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertUser, "u1", "Ana", "h1")
		return err
	})
	require.NoError(t, err)
	assert.True(t, userExists(t, database, "u1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, database := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertUser, "u2", "Ben", "h2"); err != nil {
			return err
		}
		return errors.New("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, userExists(t, database, "u2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, database := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertUser, "u3", "Cy", "h3")
			panic("boom")
		})
	})
	assert.False(t, userExists(t, database, "u3"), "row should not exist after panic rollback")
}

func TestWithinTx_PartialBatchIsDiscarded(t *testing.T) {
	uow, database := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertUser, "u4", "Di", "dup"); err != nil {
			return err
		}
		// Same token hash violates the unique constraint.
		_, err := tx.ExecContext(ctx, insertUser, "u5", "Ed", "dup")
		return err
	})
	require.Error(t, err)
	assert.False(t, userExists(t, database, "u4"))
	assert.False(t, userExists(t, database, "u5"))
}
