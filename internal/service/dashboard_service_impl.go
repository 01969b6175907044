package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/sprout/internal/contract"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
)

type dashboardService struct {
	journals  repository.JournalRepo
	goals     repository.GoalRepo
	tasks     repository.TaskRepo
	dashboard repository.DashboardRepo
	loc       *time.Location
}

func NewDashboardService(
	journals repository.JournalRepo,
	goals repository.GoalRepo,
	tasks repository.TaskRepo,
	dashboard repository.DashboardRepo,
	loc *time.Location,
) DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{journals: journals, goals: goals, tasks: tasks, dashboard: dashboard, loc: loc}
}

func (s *dashboardService) Get(ctx context.Context, userID string, now time.Time) (*contract.DashboardResponse, error) {
	today := domain.Today(now, s.loc)

	tasks, err := s.tasks.ListByDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	content, err := s.dashboard.GetByDate(ctx, userID, today)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dates, err := s.journals.ListDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	days, err := s.tasks.ListCompletionByDate(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.tasks.CountCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.journals.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	hasToday := false
	for _, d := range dates {
		if d == today {
			hasToday = true
			break
		}
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	if goals == nil {
		goals = []*domain.Goal{}
	}

	return &contract.DashboardResponse{
		Date:             today,
		Tasks:            tasks,
		DashboardContent: content,
		Goals:            goals,
		Stats: contract.Stats{
			JournalStreak:  domain.JournalStreak(dates, today),
			TaskStreak:     domain.TaskStreak(days, today),
			TotalEntries:   entries,
			CompletedTasks: completed,
		},
		HasJournalToday: hasToday,
	}, nil
}
