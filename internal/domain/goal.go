package domain

import (
	"fmt"
	"time"
)

type Goal struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Duration    GoalDuration `json:"duration"`
	Category    string       `json:"category"`
	Progress    int          `json:"progress"`
	Status      GoalStatus   `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// GoalPatch carries a partial update. Nil fields are left unchanged.
type GoalPatch struct {
	Title       *string
	Description *string
	Progress    *int
	Status      *GoalStatus
}

// Apply merges p into g after validating the patched values.
func (g *Goal) Apply(p GoalPatch) error {
	progress := IntFromPtrWithDefault(g.Progress, p.Progress)
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %d", progress)
	}
	status := g.Status
	if p.Status != nil {
		if !ValidGoalStatuses[*p.Status] {
			return fmt.Errorf("unknown goal status %q", *p.Status)
		}
		status = *p.Status
	}
	title := g.Title
	if p.Title != nil {
		title = CoalesceStr(*p.Title, g.Title)
	}

	g.Title = title
	g.Progress = progress
	g.Status = status
	if p.Description != nil {
		g.Description = p.Description
	}
	return nil
}
