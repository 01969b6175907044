package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/google/uuid"
)

type goalService struct {
	goals repository.GoalRepo
}

func NewGoalService(goals repository.GoalRepo) GoalService {
	return &goalService{goals: goals}
}

func (s *goalService) Create(ctx context.Context, g *domain.Goal) error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return validationErr("title is required")
	}
	if !domain.ValidGoalDurations[g.Duration] {
		return validationErr("unknown goal duration %q", g.Duration)
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	g.Progress = 0
	g.Status = domain.GoalActive
	g.CreatedAt = time.Now().UTC()
	return s.goals.Create(ctx, g)
}

func (s *goalService) List(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func (s *goalService) Update(ctx context.Context, userID, goalID string, patch domain.GoalPatch) (*domain.Goal, error) {
	g, err := s.owned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if err := g.Apply(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.goals.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *goalService) Delete(ctx context.Context, userID, goalID string) error {
	if _, err := s.owned(ctx, userID, goalID); err != nil {
		return err
	}
	return s.goals.Delete(ctx, goalID)
}

// owned loads a goal and hides other users' goals behind ErrNotFound.
func (s *goalService) owned(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	g, err := s.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, fmt.Errorf("goal: %w", repository.ErrNotFound)
	}
	return g, nil
}
