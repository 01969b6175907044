package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/sprout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAccess_TaskWritesDuringReads verifies that concurrent task
// inserts for different users do not block or corrupt reads. SQLite WAL mode
// allows concurrent readers with a single writer, which is the access pattern
// of the pooled nightly generation batch.
func TestConcurrentAccess_TaskWritesDuringReads(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()
	users := NewSQLiteUserRepo(database)
	tasks := NewSQLiteTaskRepo(database)

	const n = 4
	ids := make([]string, n)
	for i := range ids {
		u := testutil.NewTestUser(fmt.Sprintf("user-%d", i), fmt.Sprintf("tok-%d", i))
		require.NoError(t, users.Create(ctx, u))
		ids[i] = u.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, n*10)
	for _, id := range ids {
		wg.Add(2)
		go func(userID string) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if err := tasks.Create(ctx, testutil.NewTestTask(userID, "2025-03-10", fmt.Sprintf("t%d", j))); err != nil {
					errs <- err
				}
			}
		}(id)
		go func(userID string) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if _, err := tasks.ListByDate(ctx, userID, "2025-03-10"); err != nil {
					errs <- err
				}
			}
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	for _, id := range ids {
		got, err := tasks.ListByDate(ctx, id, "2025-03-10")
		require.NoError(t, err)
		assert.Len(t, got, 5)
	}
}
