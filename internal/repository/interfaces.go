package repository

import (
	"context"

	"github.com/alexanderramin/sprout/internal/domain"
)

// Dates are passed as YYYY-MM-DD strings throughout; range bounds are inclusive.

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByTokenHash(ctx context.Context, hash string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type JournalRepo interface {
	Create(ctx context.Context, j *domain.JournalEntry) error
	GetByDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error)
	// ListByUser returns entries most-recent-first. limit <= 0 returns all.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error)
	ListByDateRange(ctx context.Context, userID, from, to string) ([]*domain.JournalEntry, error)
	ListActiveUserIDs(ctx context.Context, since string) ([]string, error)
	ListDates(ctx context.Context, userID string) ([]string, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByDate(ctx context.Context, userID, date string) ([]*domain.Task, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	DeleteByDate(ctx context.Context, userID, date string) (int64, error)
	ListCompletionByDate(ctx context.Context, userID string) ([]domain.DayCompletion, error)
	CountCompleted(ctx context.Context, userID string) (int, error)
}

type DashboardRepo interface {
	Create(ctx context.Context, d *domain.DashboardContent) error
	// GetByDate returns the most recently written content for the date.
	GetByDate(ctx context.Context, userID, date string) (*domain.DashboardContent, error)
	DeleteByDate(ctx context.Context, userID, date string) error
}
