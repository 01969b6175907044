package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposePrompt_RecentAndGoalsInFull(t *testing.T) {
	long := strings.Repeat("word ", 100)
	in := PromptInput{
		Recent: []JournalSnippet{{Date: "2025-03-10", Content: long}},
		Goals: []GoalSnippet{{
			ID: "g-1", Title: "Run a 10k", Duration: "3months", Progress: 20,
			Description: "three runs a week",
		}},
	}

	prompt := ComposePrompt(in)

	assert.Contains(t, prompt, "Date: 2025-03-10\nContent: "+long)
	assert.Contains(t, prompt, "Goal ID: g-1\nGoal: Run a 10k\nDuration: 3months\nProgress: 20%\nDescription: three runs a week")
	assert.Contains(t, prompt, "Create 5-7 specific, actionable tasks")
	assert.Contains(t, prompt, "recent journals (40% weight) and user goals (40% weight)")
	assert.Contains(t, prompt, "Medium journals get 15% weight, old journals get 5% weight")
	assert.Contains(t, prompt, "10-45 minutes")
}

func TestComposePrompt_MediumCappedAndTruncated(t *testing.T) {
	content := strings.Repeat("a", 150)
	in := PromptInput{
		Medium: []JournalSnippet{
			{Date: "2025-02-20", Content: content},
			{Date: "2025-02-19", Content: "short"},
			{Date: "2025-02-18", Content: "third"},
			{Date: "2025-02-17", Content: "fourth is dropped"},
		},
	}

	prompt := ComposePrompt(in)

	assert.Contains(t, prompt, "2025-02-20: "+strings.Repeat("a", 100)+"...")
	assert.NotContains(t, prompt, strings.Repeat("a", 101))
	assert.Contains(t, prompt, "2025-02-19: short\n")
	assert.NotContains(t, prompt, "short...")
	assert.Contains(t, prompt, "2025-02-18: third")
	assert.NotContains(t, prompt, "fourth is dropped")
}

func TestComposePrompt_OldCappedAndTruncated(t *testing.T) {
	in := PromptInput{
		Old: []JournalSnippet{
			{Date: "2025-01-01", Content: strings.Repeat("b", 60)},
			{Date: "2024-12-31", Content: "second"},
			{Date: "2024-12-30", Content: "third is dropped"},
		},
	}

	prompt := ComposePrompt(in)

	assert.Contains(t, prompt, "2025-01-01: "+strings.Repeat("b", 50)+"...")
	assert.Contains(t, prompt, "2024-12-31: second")
	assert.NotContains(t, prompt, "third is dropped")
}

func TestComposePrompt_TruncatesByRune(t *testing.T) {
	in := PromptInput{Old: []JournalSnippet{{Date: "2025-01-01", Content: strings.Repeat("é", 60)}}}

	prompt := ComposePrompt(in)

	assert.Contains(t, prompt, "2025-01-01: "+strings.Repeat("é", 50)+"...")
}

func TestComposePrompt_EmptySectionsAndMissingDescription(t *testing.T) {
	in := PromptInput{Goals: []GoalSnippet{{ID: "g", Title: "Sleep", Duration: "1month"}}}

	prompt := ComposePrompt(in)

	assert.Contains(t, prompt, "RECENT JOURNALS (Most Important - Last 7 days):\n(none)")
	assert.Contains(t, prompt, "OLD JOURNALS (30+ days ago):\n(none)")
	assert.Contains(t, prompt, "Description: No description")
}

func TestComposePrompt_ListsAllCategories(t *testing.T) {
	prompt := ComposePrompt(PromptInput{})

	assert.Contains(t, prompt, `"category": "learning|health|productivity|wellness|creativity|social|financial|personal"`)
	assert.Contains(t, prompt, "no markdown")
}
