package domain

import (
	"strings"
	"time"
)

// JournalEntry is a user's free-text entry for one calendar date. Entries are
// immutable once written: at most one exists per (UserID, Date).
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	WordCount int       `json:"wordCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// CountWords returns the number of whitespace-separated words in content.
func CountWords(content string) int {
	return len(strings.Fields(content))
}
