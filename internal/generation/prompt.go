package generation

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sprout/internal/domain"
)

const (
	mediumPromptLimit = 3
	mediumContentLen  = 100
	oldPromptLimit    = 2
	oldContentLen     = 50
)

// JournalSnippet is the part of a journal entry the prompt needs.
type JournalSnippet struct {
	Date    string
	Content string
}

// GoalSnippet is the part of a goal the prompt needs.
type GoalSnippet struct {
	ID          string
	Title       string
	Duration    string
	Progress    int
	Description string
}

// PromptInput is the per-user context snapshot a prompt is built from.
type PromptInput struct {
	Recent []JournalSnippet
	Medium []JournalSnippet
	Old    []JournalSnippet
	Goals  []GoalSnippet
}

// GoalIDs returns the set of goal IDs the model may reference.
func (in PromptInput) GoalIDs() map[string]bool {
	ids := make(map[string]bool, len(in.Goals))
	for _, g := range in.Goals {
		ids[g.ID] = true
	}
	return ids
}

// ComposePrompt renders the task-generation prompt. Recent journals and goals
// are included in full; older journals are capped and truncated.
func ComposePrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("You are a life coach AI. Create 5-7 specific, actionable tasks for tomorrow based on this user's information:\n\n")

	b.WriteString("RECENT JOURNALS (Most Important - Last 7 days):\n")
	writeSection(&b, len(in.Recent), func(i int) string {
		return fmt.Sprintf("Date: %s\nContent: %s", in.Recent[i].Date, in.Recent[i].Content)
	}, "\n\n")

	b.WriteString("USER GOALS:\n")
	writeSection(&b, len(in.Goals), func(i int) string {
		g := in.Goals[i]
		desc := domain.CoalesceStr(g.Description, "No description")
		return fmt.Sprintf("Goal ID: %s\nGoal: %s\nDuration: %s\nProgress: %d%%\nDescription: %s",
			g.ID, g.Title, g.Duration, g.Progress, desc)
	}, "\n\n")

	medium := capSnippets(in.Medium, mediumPromptLimit)
	b.WriteString("MEDIUM TERM JOURNALS (8-30 days ago):\n")
	writeSection(&b, len(medium), func(i int) string {
		return fmt.Sprintf("%s: %s", medium[i].Date, truncate(medium[i].Content, mediumContentLen))
	}, "\n")

	old := capSnippets(in.Old, oldPromptLimit)
	b.WriteString("OLD JOURNALS (30+ days ago):\n")
	writeSection(&b, len(old), func(i int) string {
		return fmt.Sprintf("%s: %s", old[i].Date, truncate(old[i].Content, oldContentLen))
	}, "\n")

	categories := make([]string, len(domain.TaskCategories))
	for i, c := range domain.TaskCategories {
		categories[i] = string(c)
	}

	b.WriteString(`INSTRUCTIONS:
1. Create 5-7 specific tasks for tomorrow
2. Focus mostly on recent journals (40% weight) and user goals (40% weight)
3. Medium journals get 15% weight, old journals get 5% weight
4. Each task should take 10-45 minutes
5. Make tasks actionable and specific
6. Include tasks that help achieve the user's goals; set relatedGoalId to the Goal ID a task serves
7. Consider the user's mood, challenges, and interests from their journals
8. Provide exactly one dailyQuote and a focusArea of 2-4 words

`)
	fmt.Fprintf(&b, `RESPONSE FORMAT (a single valid JSON object, no markdown, no extra text):
{
  "tasks": [
    {
      "title": "Specific task title",
      "description": "Clear description of what to do and why",
      "category": "%s",
      "timeEstimate": "X minutes",
      "priority": "high|medium|low",
      "relatedGoalId": "Goal ID or omit"
    }
  ],
  "dailyQuote": "Inspiring quote relevant to user's current situation",
  "focusArea": "Main area of focus for tomorrow (2-4 words)"
}
`, strings.Join(categories, "|"))

	return b.String()
}

func writeSection(b *strings.Builder, n int, item func(i int) string, sep string) {
	if n == 0 {
		b.WriteString("(none)\n\n")
		return
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(item(i))
	}
	b.WriteString("\n\n")
}

func capSnippets(s []JournalSnippet, n int) []JournalSnippet {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// truncate cuts s to max runes and marks the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
