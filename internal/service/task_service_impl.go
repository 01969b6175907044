package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
)

type taskService struct {
	tasks repository.TaskRepo
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) List(ctx context.Context, userID string, q TaskQuery) ([]*domain.Task, error) {
	if q.Date != "" {
		if _, err := domain.ParseDate(q.Date); err != nil {
			return nil, validationErr("%v", err)
		}
		return s.tasks.ListByDate(ctx, userID, q.Date)
	}
	if q.Limit < 0 {
		return nil, validationErr("limit must not be negative")
	}
	return s.tasks.ListByUser(ctx, userID, q.Limit)
}

func (s *taskService) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("task: %w", repository.ErrNotFound)
	}
	if t.Completed == completed {
		return t, nil
	}
	t.Completed = completed
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
