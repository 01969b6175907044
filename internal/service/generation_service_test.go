package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/generation"
	"github.com/alexanderramin/sprout/internal/llm"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/alexanderramin/sprout/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

type stubLLM struct {
	text string
	err  error
}

func (m *stubLLM) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.text, Model: "stub"}, nil
}

func (m *stubLLM) Available(context.Context) bool { return m.err == nil }

// modelReply builds a valid model payload with n tasks; the first task links goalID.
func modelReply(t *testing.T, n int, goalID string) string {
	t.Helper()
	tasks := make([]map[string]any, n)
	for i := range tasks {
		tasks[i] = map[string]any{
			"title":        fmt.Sprintf("Task %d", i+1),
			"description":  "something useful",
			"category":     "productivity",
			"timeEstimate": "25 minutes",
			"priority":     "medium",
		}
	}
	if goalID != "" {
		tasks[0]["relatedGoalId"] = goalID
	}
	data, err := json.Marshal(map[string]any{"tasks": tasks, "dailyQuote": "Onward.", "focusArea": "Deep Work"})
	require.NoError(t, err)
	return string(data)
}

// capturingGenerator records the snapshot and returns the fallback batch.
type capturingGenerator struct {
	mu    sync.Mutex
	calls []generation.PromptInput
}

func (g *capturingGenerator) Generate(_ context.Context, in generation.PromptInput) generation.Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, in)
	return generation.Result{Response: generation.FallbackResponse(), Source: generation.SourceFallback}
}

type genFixture struct {
	db       *sql.DB
	users    *repository.SQLiteUserRepo
	journals *repository.SQLiteJournalRepo
	goals    *repository.SQLiteGoalRepo
	tasks    *repository.SQLiteTaskRepo
	dash     *repository.SQLiteDashboardRepo
}

func newGenFixture(t *testing.T, database *sql.DB) *genFixture {
	t.Helper()
	return &genFixture{
		db:       database,
		users:    repository.NewSQLiteUserRepo(database),
		journals: repository.NewSQLiteJournalRepo(database),
		goals:    repository.NewSQLiteGoalRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		dash:     repository.NewSQLiteDashboardRepo(database),
	}
}

func (f *genFixture) service(gen TaskGenerator, uow db.UnitOfWork, cfg GenerationConfig) GenerationService {
	if uow == nil {
		uow = testutil.NewTestUoW(f.db)
	}
	return NewGenerationService(f.journals, f.goals, uow, gen, cfg, func() time.Time { return fixedNow })
}

func (f *genFixture) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name, name+"-token")
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *genFixture) journal(t *testing.T, userID string, daysAgo int, content string) {
	t.Helper()
	j := testutil.NewTestJournal(userID, domain.DaysBefore(fixedNow, daysAgo), content)
	require.NoError(t, f.journals.Create(context.Background(), j))
}

func (f *genFixture) countRows(t *testing.T, table, userID string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE user_id = ?`, userID).Scan(&n))
	return n
}

func TestGenerateForUser_EmptyUserSkipped(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	u := f.user(t, "empty")
	gen := &capturingGenerator{}

	out, err := f.service(gen, nil, GenerationConfig{}).GenerateForUser(context.Background(), GenerateRequest{UserID: u.ID})

	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Equal(t, "2025-03-11", out.TargetDate)
	assert.Empty(t, gen.calls, "generator must not be called")
	assert.Zero(t, f.countRows(t, "tasks", u.ID))
	assert.Zero(t, f.countRows(t, "dashboard_content", u.ID))
}

func TestGenerateForUser_OnlyPausedGoalsSkipped(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	u := f.user(t, "paused")
	require.NoError(t, f.goals.Create(context.Background(),
		testutil.NewTestGoal(u.ID, "On hold", testutil.WithGoalStatus(domain.GoalPaused))))
	f.journal(t, u.ID, 40, "long ago")

	out, err := f.service(&capturingGenerator{}, nil, GenerationConfig{}).
		GenerateForUser(context.Background(), GenerateRequest{UserID: u.ID})

	require.NoError(t, err)
	assert.True(t, out.Skipped)
}

func TestGenerateForUser_ModelBatchPersisted(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	ctx := context.Background()
	u := f.user(t, "ana")
	goal := testutil.NewTestGoal(u.ID, "Ship the side project")
	require.NoError(t, f.goals.Create(ctx, goal))
	f.journal(t, u.ID, 1, "Felt productive, want to finish the landing page.")

	gen := generation.NewGenerator(&stubLLM{text: modelReply(t, 6, goal.ID)}, nil)
	out, err := f.service(gen, nil, GenerationConfig{}).GenerateForUser(ctx, GenerateRequest{UserID: u.ID})

	require.NoError(t, err)
	assert.False(t, out.Skipped)
	assert.Equal(t, generation.SourceModel, out.Source)

	tasks, err := f.tasks.ListByDate(ctx, u.ID, "2025-03-11")
	require.NoError(t, err)
	require.Len(t, tasks, 6)
	assert.Equal(t, "Task 1", tasks[0].Title)
	assert.Equal(t, "Task 6", tasks[5].Title)
	for _, task := range tasks {
		assert.False(t, task.Completed)
	}
	require.NotNil(t, tasks[0].RelatedGoalID)
	assert.Equal(t, goal.ID, *tasks[0].RelatedGoalID)

	assert.Equal(t, 1, f.countRows(t, "dashboard_content", u.ID))
	content, err := f.dash.GetByDate(ctx, u.ID, "2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, "Onward.", content.DailyQuote)
	assert.Equal(t, "Deep Work", content.FocusArea)
	assert.Equal(t, "model", content.Source)
}

func TestGenerateForUser_FallbackBatchPersisted(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	ctx := context.Background()
	u := f.user(t, "ben")
	f.journal(t, u.ID, 0, "Tired today.")

	gen := generation.NewGenerator(&stubLLM{err: llm.ErrUnavailable}, nil)
	out, err := f.service(gen, nil, GenerationConfig{}).GenerateForUser(ctx, GenerateRequest{UserID: u.ID})

	require.NoError(t, err)
	assert.Equal(t, generation.SourceFallback, out.Source)
	assert.ErrorIs(t, out.FallbackReason, llm.ErrUnavailable)

	tasks, err := f.tasks.ListByDate(ctx, u.ID, "2025-03-11")
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	assert.Equal(t, "Write in your journal", tasks[0].Title)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)

	content, err := f.dash.GetByDate(ctx, u.ID, "2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, "Personal Growth", content.FocusArea)
	assert.Equal(t, "fallback", content.Source)
}

func TestGenerateForUser_AppendsByDefaultAndReplacesOnRequest(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	ctx := context.Background()
	u := f.user(t, "cy")
	f.journal(t, u.ID, 2, "notes")
	svc := f.service(&capturingGenerator{}, nil, GenerationConfig{})

	_, err := svc.GenerateForUser(ctx, GenerateRequest{UserID: u.ID})
	require.NoError(t, err)
	_, err = svc.GenerateForUser(ctx, GenerateRequest{UserID: u.ID})
	require.NoError(t, err)

	assert.Equal(t, 8, f.countRows(t, "tasks", u.ID), "two calls append two batches")
	assert.Equal(t, 2, f.countRows(t, "dashboard_content", u.ID))

	out, err := svc.GenerateForUser(ctx, GenerateRequest{UserID: u.ID, ReplaceExisting: true})
	require.NoError(t, err)
	assert.Equal(t, int64(8), out.Replaced)
	assert.Equal(t, 4, f.countRows(t, "tasks", u.ID))
	assert.Equal(t, 1, f.countRows(t, "dashboard_content", u.ID))
}

func TestGenerateForUser_ExplicitTargetDate(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	ctx := context.Background()
	u := f.user(t, "dee")
	f.journal(t, u.ID, 0, "today")
	svc := f.service(&capturingGenerator{}, nil, GenerationConfig{})

	out, err := svc.GenerateForUser(ctx, GenerateRequest{UserID: u.ID, TargetDate: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", out.TargetDate)
	assert.Equal(t, 4, f.countRows(t, "tasks", u.ID))

	_, err = svc.GenerateForUser(ctx, GenerateRequest{UserID: u.ID, TargetDate: "tomorrow"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateForUser_SnapshotBuckets(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	ctx := context.Background()
	u := f.user(t, "eve")
	for _, d := range []int{0, 7, 8, 20, 30, 31, 45, 60, 70, 80, 90, 100} {
		f.journal(t, u.ID, d, fmt.Sprintf("entry %d days ago", d))
	}
	require.NoError(t, f.goals.Create(ctx, testutil.NewTestGoal(u.ID, "Active goal",
		testutil.WithGoalDescription("desc"), testutil.WithGoalProgress(30))))
	require.NoError(t, f.goals.Create(ctx, testutil.NewTestGoal(u.ID, "Done goal",
		testutil.WithGoalStatus(domain.GoalCompleted))))

	gen := &capturingGenerator{}
	_, err := f.service(gen, nil, GenerationConfig{}).GenerateForUser(ctx, GenerateRequest{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, gen.calls, 1)
	in := gen.calls[0]

	dates := func(s []generation.JournalSnippet) []string {
		out := make([]string, len(s))
		for i, j := range s {
			out[i] = j.Date
		}
		return out
	}
	assert.Equal(t, []string{"2025-03-10", "2025-03-03"}, dates(in.Recent))
	assert.Equal(t, []string{"2025-03-02", "2025-02-18", "2025-02-08"}, dates(in.Medium))
	assert.Equal(t, []string{"2025-02-07", "2025-01-24", "2025-01-09", "2024-12-30", "2024-12-20"}, dates(in.Old))
	assert.Equal(t, "entry 0 days ago", in.Recent[0].Content)

	require.Len(t, in.Goals, 1)
	assert.Equal(t, "Active goal", in.Goals[0].Title)
	assert.Equal(t, "desc", in.Goals[0].Description)
	assert.Equal(t, 30, in.Goals[0].Progress)
}

func TestGenerateForUser_RollbackOnDashboardInsertFailure(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	ctx := context.Background()
	u := f.user(t, "fay")
	f.journal(t, u.ID, 1, "entry")

	// ExecContext #1-#4 insert the fallback tasks, #5 the dashboard row.
	failUoW := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 5, Err: errors.New("injected dashboard failure")}
	_, err := f.service(&capturingGenerator{}, failUoW, GenerationConfig{}).
		GenerateForUser(ctx, GenerateRequest{UserID: u.ID})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected dashboard failure")
	assert.Zero(t, f.countRows(t, "tasks", u.ID), "tasks must roll back with the dashboard insert")
}

func TestGenerateForAllUsers_FailureIsolation(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	ctx := context.Background()
	a := f.user(t, "a")
	b := f.user(t, "b")
	f.journal(t, a.ID, 1, "a writes")
	f.journal(t, b.ID, 1, "b writes")

	failUoW := &testutil.FailForArgUoW{DB: f.db, Arg: a.ID, Err: errors.New("disk full")}
	report, err := f.service(&capturingGenerator{}, failUoW, GenerationConfig{}).GenerateForAllUsers(ctx, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Users)
	assert.Equal(t, 1, report.Generated)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, a.ID, report.Failures[0].UserID)
	assert.Contains(t, report.Failures[0].Err.Error(), "disk full")

	assert.Zero(t, f.countRows(t, "tasks", a.ID))
	assert.Equal(t, 4, f.countRows(t, "tasks", b.ID))
	assert.Equal(t, 1, f.countRows(t, "dashboard_content", b.ID))
}

func TestGenerateForAllUsers_OnlyActiveUsers(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	ctx := context.Background()
	active := f.user(t, "active")
	stale := f.user(t, "stale")
	goalsOnly := f.user(t, "goals-only")
	f.journal(t, active.ID, 29, "still counts")
	f.journal(t, stale.ID, 31, "too old")
	require.NoError(t, f.goals.Create(ctx, testutil.NewTestGoal(goalsOnly.ID, "no journals")))

	gen := &capturingGenerator{}
	report, err := f.service(gen, nil, GenerationConfig{}).GenerateForAllUsers(ctx, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", report.TargetDate)
	assert.Equal(t, 1, report.Users)
	// 29 days ago is outside the recent window and there are no goals.
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, gen.calls)
}

func TestGenerateForAllUsers_WorkerPool(t *testing.T) {
	f := newGenFixture(t, testutil.NewFileTestDB(t))
	ctx := context.Background()
	var ids []string
	for i := 0; i < 6; i++ {
		u := f.user(t, fmt.Sprintf("user%d", i))
		f.journal(t, u.ID, 0, "hello")
		ids = append(ids, u.ID)
	}

	gen := &capturingGenerator{}
	report, err := f.service(gen, nil, GenerationConfig{Workers: 3}).GenerateForAllUsers(ctx, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, 6, report.Generated)
	assert.Equal(t, 6, report.Fallbacks)
	assert.Empty(t, report.Failures)
	assert.Len(t, gen.calls, 6)
	for _, id := range ids {
		assert.Equal(t, 4, f.countRows(t, "tasks", id))
	}
}

func TestGenerateForAllUsers_ConfiguredLocation(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	u := f.user(t, "tz")
	// 15:00 UTC on the 10th is already the 11th in UTC+10.
	loc := time.FixedZone("UTC+10", 10*3600)
	require.NoError(t, f.journals.Create(context.Background(), testutil.NewTestJournal(u.ID, "2025-03-11", "morning")))

	report, err := f.service(&capturingGenerator{}, nil, GenerationConfig{Location: loc}).
		GenerateForAllUsers(context.Background(), fixedNow)

	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", report.TargetDate)
	assert.Equal(t, 1, report.Generated)
}

func TestGenerateForUser_UseCaseObserved(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	u := f.user(t, "obs")
	var events []UseCaseEvent
	obs := observerFunc(func(e UseCaseEvent) { events = append(events, e) })

	svc := NewGenerationService(f.journals, f.goals, testutil.NewTestUoW(f.db), &capturingGenerator{},
		GenerationConfig{}, func() time.Time { return fixedNow }, obs)
	_, err := svc.GenerateForUser(context.Background(), GenerateRequest{UserID: u.ID})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "generate_for_user", events[0].Name)
	assert.True(t, events[0].Success)
	assert.Equal(t, true, events[0].Fields["skipped"])
}

type observerFunc func(UseCaseEvent)

func (f observerFunc) ObserveUseCase(_ context.Context, e UseCaseEvent) { f(e) }

func TestGenerateForUser_RequiresUserID(t *testing.T) {
	f := newGenFixture(t, testutil.NewTestDB(t))
	_, err := f.service(&capturingGenerator{}, nil, GenerationConfig{}).
		GenerateForUser(context.Background(), GenerateRequest{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, strings.Contains(err.Error(), "user id"))
}
