package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprout/internal/contract"
	"github.com/alexanderramin/sprout/internal/domain"
)

// FormatTasks renders a day's tasks as a table.
func FormatTasks(date string, tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim(fmt.Sprintf("No tasks for %s.", date)) + "\n"
	}
	headers := []string{"", "ID", "TASK", "CATEGORY", "TIME", "PRIORITY"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			Checkbox(t.Completed),
			TruncID(t.ID),
			Truncate(t.Title, 48),
			CategoryBadge(string(t.Category)),
			t.TimeEstimate,
			PriorityBadge(t.Priority),
		})
	}
	return RenderBox("Tasks · "+date, RenderTable(headers, rows))
}

// FormatGoals renders goals with progress bars.
func FormatGoals(goals []*domain.Goal) string {
	if len(goals) == 0 {
		return Dim("No goals yet.") + "\n"
	}
	headers := []string{"ID", "GOAL", "DURATION", "PROGRESS", "STATUS"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			TruncID(g.ID),
			Truncate(g.Title, 40),
			string(g.Duration),
			RenderProgress(g.Progress, 12),
			GoalStatusPill(g.Status),
		})
	}
	return RenderBox("Goals", RenderTable(headers, rows))
}

// FormatJournals renders journal entries newest first, previewing content.
func FormatJournals(entries []*domain.JournalEntry) string {
	if len(entries) == 0 {
		return Dim("No journal entries yet.") + "\n"
	}
	headers := []string{"DATE", "WORDS", "ENTRY"}
	rows := make([][]string, 0, len(entries))
	for _, j := range entries {
		rows = append(rows, []string{j.Date, fmt.Sprintf("%d", j.WordCount), Dim(Truncate(j.Content, 60))})
	}
	return RenderBox("Journal", RenderTable(headers, rows))
}

// FormatDashboard renders today's quote, focus area, stats and tasks.
func FormatDashboard(d *contract.DashboardResponse) string {
	var b strings.Builder
	if d.DashboardContent != nil {
		b.WriteString(StyleBold.Render("“"+d.DashboardContent.DailyQuote+"”") + "\n")
		b.WriteString(Dim("Focus: ") + StyleBlue.Render(d.DashboardContent.FocusArea) + "\n\n")
	}
	fmt.Fprintf(&b, "%s %d days   %s %d days   %s %d   %s %d\n",
		Dim("journal streak"), d.Stats.JournalStreak,
		Dim("task streak"), d.Stats.TaskStreak,
		Dim("entries"), d.Stats.TotalEntries,
		Dim("completed"), d.Stats.CompletedTasks,
	)
	if !d.HasJournalToday {
		b.WriteString(StyleYellow.Render("No journal entry yet today.") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(FormatTasks(d.Date, d.Tasks))
	return b.String()
}
