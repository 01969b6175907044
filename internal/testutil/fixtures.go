package testutil

import (
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/google/uuid"
)

// NewTestUser returns a user whose token hash is derived from token.
func NewTestUser(name, token string) *domain.User {
	return &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		TokenHash: domain.HashToken(token),
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestJournal(userID, date, content string) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Content:   content,
		WordCount: domain.CountWords(content),
		CreatedAt: time.Now().UTC(),
	}
}

// Goal options
type GoalOption func(*domain.Goal)

func WithGoalStatus(s domain.GoalStatus) GoalOption {
	return func(g *domain.Goal) {
		g.Status = s
	}
}

func WithGoalProgress(p int) GoalOption {
	return func(g *domain.Goal) {
		g.Progress = p
	}
}

func WithGoalDescription(d string) GoalOption {
	return func(g *domain.Goal) {
		g.Description = &d
	}
}

func WithGoalCreatedAt(t time.Time) GoalOption {
	return func(g *domain.Goal) {
		g.CreatedAt = t
	}
}

func NewTestGoal(userID, title string, opts ...GoalOption) *domain.Goal {
	g := &domain.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Duration:  domain.GoalThreeMonths,
		Category:  "personal",
		Status:    domain.GoalActive,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Task options
type TaskOption func(*domain.Task)

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithRelatedGoal(id string) TaskOption {
	return func(t *domain.Task) {
		t.RelatedGoalID = &id
	}
}

func WithCategory(c domain.TaskCategory) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func NewTestTask(userID, date, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:           uuid.New().String(),
		UserID:       userID,
		Date:         date,
		Title:        title,
		Description:  title + " description",
		Category:     domain.CategoryPersonal,
		TimeEstimate: "15 minutes",
		Priority:     domain.PriorityMedium,
		GeneratedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestDashboard(userID, date, quote string) *domain.DashboardContent {
	return &domain.DashboardContent{
		ID:         uuid.New().String(),
		UserID:     userID,
		Date:       date,
		DailyQuote: quote,
		FocusArea:  "Personal Growth",
		Source:     "model",
		CreatedAt:  time.Now().UTC(),
	}
}
