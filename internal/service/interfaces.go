package service

import (
	"context"
	"time"

	"github.com/alexanderramin/sprout/internal/contract"
	"github.com/alexanderramin/sprout/internal/domain"
)

type UserService interface {
	// Create registers a user and returns the plaintext API token once.
	Create(ctx context.Context, name string) (*domain.User, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type JournalService interface {
	// Write stores the entry for date (today when empty). One entry per date.
	Write(ctx context.Context, userID, date, content string) (*domain.JournalEntry, error)
	GetByDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error)
	List(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error)
}

type GoalService interface {
	Create(ctx context.Context, g *domain.Goal) error
	List(ctx context.Context, userID string) ([]*domain.Goal, error)
	Update(ctx context.Context, userID, goalID string, patch domain.GoalPatch) (*domain.Goal, error)
	// Delete removes the goal; tasks that referenced it keep existing unlinked.
	Delete(ctx context.Context, userID, goalID string) error
}

// TaskQuery selects tasks by Date when set, otherwise the most recent Limit.
type TaskQuery struct {
	Date  string
	Limit int
}

type TaskService interface {
	List(ctx context.Context, userID string, q TaskQuery) ([]*domain.Task, error)
	SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error)
}

type DashboardService interface {
	Get(ctx context.Context, userID string, now time.Time) (*contract.DashboardResponse, error)
}

type GenerationService interface {
	GenerateForUser(ctx context.Context, req GenerateRequest) (*GenerationOutcome, error)
	GenerateForAllUsers(ctx context.Context, now time.Time) (*BatchReport, error)
}
