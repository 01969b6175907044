package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent, so the whole
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		token_hash TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS journals (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		content    TEXT NOT NULL,
		word_count INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		UNIQUE (user_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journals_date ON journals(date)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT,
		duration    TEXT NOT NULL
		            CHECK(duration IN ('1month','3months','6months','1year')),
		category    TEXT NOT NULL,
		progress    INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','completed','paused')),
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date            TEXT NOT NULL,
		seq             INTEGER NOT NULL DEFAULT 0,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		category        TEXT NOT NULL,
		time_estimate   TEXT NOT NULL DEFAULT '',
		priority        TEXT NOT NULL DEFAULT 'medium'
		                CHECK(priority IN ('high','medium','low')),
		completed       INTEGER NOT NULL DEFAULT 0,
		related_goal_id TEXT REFERENCES goals(id) ON DELETE SET NULL,
		generated_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_date ON tasks(user_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_goal ON tasks(related_goal_id)`,
	`CREATE TABLE IF NOT EXISTS dashboard_content (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date        TEXT NOT NULL,
		daily_quote TEXT NOT NULL,
		focus_area  TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dashboard_user_date ON dashboard_content(user_id, date)`,
	// Record whether a batch came from the model or the fallback set.
	`ALTER TABLE dashboard_content ADD COLUMN source TEXT NOT NULL DEFAULT 'model'`,
}
