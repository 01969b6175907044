package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/alexanderramin/sprout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateAndAuthenticate(t *testing.T) {
	svc := NewUserService(repository.NewSQLiteUserRepo(testutil.NewTestDB(t)))
	ctx := context.Background()

	u, token, err := svc.Create(ctx, "  Ana  ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, token, u.TokenHash, "only the hash is stored")

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate(ctx, "wrong")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, _, err = svc.Create(ctx, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJournalService_Write(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	u := testutil.NewTestUser("Ana", "t")
	require.NoError(t, repository.NewSQLiteUserRepo(database).Create(ctx, u))

	svc := NewJournalService(repository.NewSQLiteJournalRepo(database), time.UTC).(*journalService)
	svc.now = func() time.Time { return fixedNow }

	j, err := svc.Write(ctx, u.ID, "", "three  little\nwords here")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", j.Date)
	assert.Equal(t, 4, j.WordCount)

	_, err = svc.Write(ctx, u.ID, "2025-03-10", "again")
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = svc.Write(ctx, u.ID, "2025-03-09", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Write(ctx, u.ID, "09/03/2025", "bad date")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.GetByDate(ctx, u.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, j.ID, got.ID)
}

func TestGoalService_OwnershipAndPatch(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	users := repository.NewSQLiteUserRepo(database)
	owner := testutil.NewTestUser("owner", "o")
	other := testutil.NewTestUser("other", "x")
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, other))

	svc := NewGoalService(repository.NewSQLiteGoalRepo(database))
	g := &domain.Goal{UserID: owner.ID, Title: "Learn Spanish", Duration: domain.GoalSixMonths, Category: "learning"}
	require.NoError(t, svc.Create(ctx, g))
	assert.Equal(t, domain.GoalActive, g.Status)

	progress := 55
	updated, err := svc.Update(ctx, owner.ID, g.ID, domain.GoalPatch{Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 55, updated.Progress)
	assert.Equal(t, "Learn Spanish", updated.Title)

	tooMuch := 101
	_, err = svc.Update(ctx, owner.ID, g.ID, domain.GoalPatch{Progress: &tooMuch})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, other.ID, g.ID, domain.GoalPatch{Progress: &progress})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, other.ID, g.ID), repository.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, owner.ID, g.ID))
	goals, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalService_CreateValidation(t *testing.T) {
	svc := NewGoalService(repository.NewSQLiteGoalRepo(testutil.NewTestDB(t)))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Create(ctx, &domain.Goal{UserID: "u", Title: "", Duration: domain.GoalOneYear}), ErrValidation)
	assert.ErrorIs(t, svc.Create(ctx, &domain.Goal{UserID: "u", Title: "x", Duration: "2years"}), ErrValidation)
}

func TestTaskService_ListAndComplete(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	users := repository.NewSQLiteUserRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	owner := testutil.NewTestUser("owner", "o")
	other := testutil.NewTestUser("other", "x")
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, other))

	t1 := testutil.NewTestTask(owner.ID, "2025-03-10", "one")
	require.NoError(t, tasks.Create(ctx, t1))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(owner.ID, "2025-03-11", "two")))

	svc := NewTaskService(tasks)

	byDate, err := svc.List(ctx, owner.ID, TaskQuery{Date: "2025-03-10"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)

	recent, err := svc.List(ctx, owner.ID, TaskQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "two", recent[0].Title)

	_, err = svc.List(ctx, owner.ID, TaskQuery{Date: "soon"})
	assert.ErrorIs(t, err, ErrValidation)

	done, err := svc.SetCompleted(ctx, owner.ID, t1.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	_, err = svc.SetCompleted(ctx, other.ID, t1.ID, false)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDashboardService_Get(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	users := repository.NewSQLiteUserRepo(database)
	journals := repository.NewSQLiteJournalRepo(database)
	goals := repository.NewSQLiteGoalRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	dash := repository.NewSQLiteDashboardRepo(database)

	u := testutil.NewTestUser("Ana", "t")
	require.NoError(t, users.Create(ctx, u))
	for _, d := range []string{"2025-03-10", "2025-03-09", "2025-03-08", "2025-03-05"} {
		require.NoError(t, journals.Create(ctx, testutil.NewTestJournal(u.ID, d, "x")))
	}
	require.NoError(t, goals.Create(ctx, testutil.NewTestGoal(u.ID, "Goal")))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(u.ID, "2025-03-10", "today a", testutil.WithCompleted())))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(u.ID, "2025-03-10", "today b", testutil.WithCompleted())))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(u.ID, "2025-03-09", "yesterday", testutil.WithCompleted())))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(u.ID, "2025-03-08", "undone")))
	require.NoError(t, dash.Create(ctx, testutil.NewTestDashboard(u.ID, "2025-03-10", "Keep at it.")))

	svc := NewDashboardService(journals, goals, tasks, dash, time.UTC)
	resp, err := svc.Get(ctx, u.ID, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Len(t, resp.Tasks, 2)
	require.NotNil(t, resp.DashboardContent)
	assert.Equal(t, "Keep at it.", resp.DashboardContent.DailyQuote)
	assert.Len(t, resp.Goals, 1)
	assert.True(t, resp.HasJournalToday)
	assert.Equal(t, 3, resp.Stats.JournalStreak)
	assert.Equal(t, 2, resp.Stats.TaskStreak)
	assert.Equal(t, 4, resp.Stats.TotalEntries)
	assert.Equal(t, 3, resp.Stats.CompletedTasks)
}

func TestDashboardService_EmptyUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	u := testutil.NewTestUser("New", "t")
	require.NoError(t, repository.NewSQLiteUserRepo(database).Create(ctx, u))

	svc := NewDashboardService(
		repository.NewSQLiteJournalRepo(database),
		repository.NewSQLiteGoalRepo(database),
		repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteDashboardRepo(database),
		nil,
	)
	resp, err := svc.Get(ctx, u.ID, fixedNow)
	require.NoError(t, err)

	assert.NotNil(t, resp.Tasks)
	assert.Empty(t, resp.Tasks)
	assert.Nil(t, resp.DashboardContent)
	assert.False(t, resp.HasJournalToday)
	assert.Zero(t, resp.Stats.JournalStreak)
}
