package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/generation"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	recentWindowDays = 7
	mediumStartDays  = 8
	activeWindowDays = 30
	oldScanLimit     = 50
	oldSampleSize    = 5
)

// TaskGenerator produces a task batch from a context snapshot. It never fails.
type TaskGenerator interface {
	Generate(ctx context.Context, in generation.PromptInput) generation.Result
}

// GenerateRequest asks for one user's batch. TargetDate defaults to the day
// after Now; Now defaults to the service clock. Journal buckets are relative
// to Now, not TargetDate.
type GenerateRequest struct {
	UserID          string
	TargetDate      string
	Now             time.Time
	ReplaceExisting bool
}

// GenerationOutcome reports what GenerateForUser did. Skipped is set when the
// user had neither recent journals nor active goals; nothing was written.
type GenerationOutcome struct {
	UserID         string
	TargetDate     string
	Skipped        bool
	Source         generation.Source
	FallbackReason error
	Replaced       int64
	Tasks          []*domain.Task
	Dashboard      *domain.DashboardContent
}

type UserFailure struct {
	UserID string
	Err    error
}

// BatchReport summarises one GenerateForAllUsers run.
type BatchReport struct {
	TargetDate string
	Users      int
	Generated  int
	Skipped    int
	Fallbacks  int
	Failures   []UserFailure
}

// GenerationConfig tunes the batch run.
type GenerationConfig struct {
	Location        *time.Location
	Workers         int
	ReplaceExisting bool
}

type generationService struct {
	journals  repository.JournalRepo
	goals     repository.GoalRepo
	uow       db.UnitOfWork
	generator TaskGenerator
	cfg       GenerationConfig
	now       func() time.Time
	observer  UseCaseObserver
}

func NewGenerationService(
	journals repository.JournalRepo,
	goals repository.GoalRepo,
	uow db.UnitOfWork,
	generator TaskGenerator,
	cfg GenerationConfig,
	now func() time.Time,
	observers ...UseCaseObserver,
) GenerationService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if now == nil {
		now = time.Now
	}
	return &generationService{
		journals:  journals,
		goals:     goals,
		uow:       uow,
		generator: generator,
		cfg:       cfg,
		now:       now,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *generationService) GenerateForUser(ctx context.Context, req GenerateRequest) (out *GenerationOutcome, err error) {
	start := time.Now()
	fields := map[string]any{"user_id": req.UserID}
	defer func() {
		if out != nil {
			fields["target_date"] = out.TargetDate
			fields["skipped"] = out.Skipped
			fields["tasks"] = len(out.Tasks)
			if out.Source != "" {
				fields["source"] = string(out.Source)
			}
		}
		observe(ctx, s.observer, "generate_for_user", start, err, fields)
	}()

	if req.UserID == "" {
		return nil, validationErr("user id is required")
	}
	now := req.Now
	if now.IsZero() {
		now = s.now()
	}
	target := req.TargetDate
	if target == "" {
		target = domain.Tomorrow(now, s.cfg.Location)
	} else if _, perr := domain.ParseDate(target); perr != nil {
		return nil, validationErr("%v", perr)
	}

	out = &GenerationOutcome{UserID: req.UserID, TargetDate: target}

	in, err := s.snapshot(ctx, req.UserID, now.In(s.cfg.Location))
	if err != nil {
		return nil, err
	}
	if len(in.Recent) == 0 && len(in.Goals) == 0 {
		out.Skipped = true
		return out, nil
	}

	res := s.generator.Generate(ctx, in)
	out.Source = res.Source
	out.FallbackReason = res.Reason
	out.Tasks, out.Dashboard = buildBatch(req.UserID, target, res, now.UTC())

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDashboard := repository.NewSQLiteDashboardRepo(tx)

		if req.ReplaceExisting {
			n, err := txTasks.DeleteByDate(ctx, req.UserID, target)
			if err != nil {
				return err
			}
			out.Replaced = n
			if err := txDashboard.DeleteByDate(ctx, req.UserID, target); err != nil {
				return err
			}
		}
		for _, t := range out.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return err
			}
		}
		return txDashboard.Create(ctx, out.Dashboard)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting tasks for user %s: %w", req.UserID, err)
	}
	return out, nil
}

// snapshot reads the user's context: recent journals in full, a medium window,
// a small sample of older entries and active goals.
func (s *generationService) snapshot(ctx context.Context, userID string, now time.Time) (generation.PromptInput, error) {
	var in generation.PromptInput

	today := domain.FormatDate(now)
	recent, err := s.journals.ListByDateRange(ctx, userID, domain.DaysBefore(now, recentWindowDays), today)
	if err != nil {
		return in, err
	}
	medium, err := s.journals.ListByDateRange(ctx, userID,
		domain.DaysBefore(now, activeWindowDays), domain.DaysBefore(now, mediumStartDays))
	if err != nil {
		return in, err
	}
	all, err := s.journals.ListByUser(ctx, userID, oldScanLimit)
	if err != nil {
		return in, err
	}
	cutoff := domain.DaysBefore(now, activeWindowDays)
	var old []*domain.JournalEntry
	for _, j := range all {
		if j.Date < cutoff {
			old = append(old, j)
			if len(old) == oldSampleSize {
				break
			}
		}
	}
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return in, err
	}

	in.Recent = snippets(recent)
	in.Medium = snippets(medium)
	in.Old = snippets(old)
	for _, g := range goals {
		if g.Status != domain.GoalActive {
			continue
		}
		desc := ""
		if g.Description != nil {
			desc = *g.Description
		}
		in.Goals = append(in.Goals, generation.GoalSnippet{
			ID:          g.ID,
			Title:       g.Title,
			Duration:    string(g.Duration),
			Progress:    g.Progress,
			Description: desc,
		})
	}
	return in, nil
}

func snippets(entries []*domain.JournalEntry) []generation.JournalSnippet {
	out := make([]generation.JournalSnippet, 0, len(entries))
	for _, j := range entries {
		out = append(out, generation.JournalSnippet{Date: j.Date, Content: j.Content})
	}
	return out
}

func buildBatch(userID, date string, res generation.Result, now time.Time) ([]*domain.Task, *domain.DashboardContent) {
	tasks := make([]*domain.Task, 0, len(res.Response.Tasks))
	for _, t := range res.Response.Tasks {
		tasks = append(tasks, &domain.Task{
			ID:            uuid.New().String(),
			UserID:        userID,
			Date:          date,
			Title:         t.Title,
			Description:   t.Description,
			Category:      domain.TaskCategory(t.Category),
			TimeEstimate:  t.TimeEstimate,
			Priority:      domain.Priority(t.Priority),
			RelatedGoalID: t.RelatedGoalID,
			GeneratedAt:   now,
		})
	}
	dash := &domain.DashboardContent{
		ID:         uuid.New().String(),
		UserID:     userID,
		Date:       date,
		DailyQuote: res.Response.DailyQuote,
		FocusArea:  res.Response.FocusArea,
		Source:     string(res.Source),
		CreatedAt:  now,
	}
	return tasks, dash
}

func (s *generationService) GenerateForAllUsers(ctx context.Context, now time.Time) (report *BatchReport, err error) {
	start := time.Now()
	if now.IsZero() {
		now = s.now()
	}
	local := now.In(s.cfg.Location)
	report = &BatchReport{TargetDate: domain.Tomorrow(now, s.cfg.Location)}
	defer func() {
		observe(ctx, s.observer, "generate_all", start, err, map[string]any{
			"target_date": report.TargetDate,
			"users":       report.Users,
			"generated":   report.Generated,
			"skipped":     report.Skipped,
			"fallbacks":   report.Fallbacks,
			"failed":      len(report.Failures),
		})
	}()

	ids, err := s.journals.ListActiveUserIDs(ctx, domain.DaysBefore(local, activeWindowDays))
	if err != nil {
		return report, fmt.Errorf("listing active users: %w", err)
	}
	report.Users = len(ids)

	var mu sync.Mutex
	runOne := func(userID string) {
		out, err := s.GenerateForUser(ctx, GenerateRequest{
			UserID:          userID,
			TargetDate:      report.TargetDate,
			Now:             now,
			ReplaceExisting: s.cfg.ReplaceExisting,
		})
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err != nil:
			report.Failures = append(report.Failures, UserFailure{UserID: userID, Err: err})
		case out.Skipped:
			report.Skipped++
		default:
			report.Generated++
			if out.Source == generation.SourceFallback {
				report.Fallbacks++
			}
		}
	}

	if s.cfg.Workers == 1 {
		for _, id := range ids {
			runOne(id)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.cfg.Workers)
		for _, id := range ids {
			g.Go(func() error {
				runOne(id)
				return nil
			})
		}
		_ = g.Wait()
	}

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].UserID < report.Failures[j].UserID
	})
	return report, nil
}
