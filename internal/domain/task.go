package domain

import "time"

// Task is one generated action item for a user and target date. RelatedGoalID
// is a weak reference: it does not own the goal and is cleared when the goal
// is deleted.
type Task struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Date          string       `json:"date"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      TaskCategory `json:"category"`
	TimeEstimate  string       `json:"timeEstimate"`
	Priority      Priority     `json:"priority"`
	Completed     bool         `json:"completed"`
	RelatedGoalID *string      `json:"relatedGoalId"`
	GeneratedAt   time.Time    `json:"generatedAt"`
}

// DashboardContent is the motivational content generated alongside a task batch.
// Source records whether the batch came from the model or the fallback set.
type DashboardContent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Date       string    `json:"date"`
	DailyQuote string    `json:"dailyQuote"`
	FocusArea  string    `json:"focusArea"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DayCompletion summarises the tasks of one date: Total tasks, Done completed.
type DayCompletion struct {
	Date  string
	Total int
	Done  int
}

// AllDone reports whether the day had tasks and every one was completed.
func (d DayCompletion) AllDone() bool {
	return d.Total > 0 && d.Done == d.Total
}
