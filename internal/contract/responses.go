package contract

import "github.com/alexanderramin/sprout/internal/domain"

type Stats struct {
	JournalStreak  int `json:"journalStreak"`
	TaskStreak     int `json:"taskStreak"`
	TotalEntries   int `json:"totalEntries"`
	CompletedTasks int `json:"completedTasks"`
}

// DashboardResponse is today's view for one user.
type DashboardResponse struct {
	Date             string                   `json:"date"`
	Tasks            []*domain.Task           `json:"tasks"`
	DashboardContent *domain.DashboardContent `json:"dashboardContent"`
	Goals            []*domain.Goal           `json:"goals"`
	Stats            Stats                    `json:"stats"`
	HasJournalToday  bool                     `json:"hasJournalToday"`
}

type GenerateTasksResponse struct {
	Date             string                   `json:"date"`
	Skipped          bool                     `json:"skipped"`
	Source           string                   `json:"source,omitempty"`
	Tasks            []*domain.Task           `json:"tasks"`
	DashboardContent *domain.DashboardContent `json:"dashboardContent"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
