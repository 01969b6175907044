package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
)

// SQLiteJournalRepo implements JournalRepo using a SQLite database.
type SQLiteJournalRepo struct {
	db db.DBTX
}

// NewSQLiteJournalRepo creates a new SQLiteJournalRepo.
func NewSQLiteJournalRepo(conn db.DBTX) *SQLiteJournalRepo {
	return &SQLiteJournalRepo{db: conn}
}

const journalColumns = `id, user_id, date, content, word_count, created_at`

func (r *SQLiteJournalRepo) Create(ctx context.Context, j *domain.JournalEntry) error {
	query := `INSERT INTO journals (` + journalColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		j.ID, j.UserID, j.Date, j.Content, j.WordCount, formatTime(j.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("journal for %s: %w", j.Date, ErrConflict)
		}
		return fmt.Errorf("inserting journal: %w", err)
	}
	return nil
}

func (r *SQLiteJournalRepo) GetByDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE user_id = ? AND date = ?`
	return scanJournal(r.db.QueryRowContext(ctx, query, userID, date))
}

func (r *SQLiteJournalRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals
		WHERE user_id = ? ORDER BY date DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limitClause(limit))
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	defer rows.Close()
	return scanJournals(rows)
}

func (r *SQLiteJournalRepo) ListByDateRange(ctx context.Context, userID, from, to string) ([]*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing journals by date range: %w", err)
	}
	defer rows.Close()
	return scanJournals(rows)
}

func (r *SQLiteJournalRepo) ListActiveUserIDs(ctx context.Context, since string) ([]string, error) {
	query := `SELECT DISTINCT user_id FROM journals WHERE date >= ? ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("listing active users: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows, "active user")
}

func (r *SQLiteJournalRepo) ListDates(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date FROM journals WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing journal dates: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows, "journal date")
}

func (r *SQLiteJournalRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journals WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting journals: %w", err)
	}
	return n, nil
}

func scanJournal(row rowScanner) (*domain.JournalEntry, error) {
	var j domain.JournalEntry
	var createdAt string
	if err := row.Scan(&j.ID, &j.UserID, &j.Date, &j.Content, &j.WordCount, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("journal: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning journal: %w", err)
	}
	t, err := parseTime(createdAt, "journal created_at")
	if err != nil {
		return nil, err
	}
	j.CreatedAt = t
	return &j, nil
}

func scanJournals(rows *sql.Rows) ([]*domain.JournalEntry, error) {
	var out []*domain.JournalEntry
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journals: %w", err)
	}
	return out, nil
}

func scanStrings(rows *sql.Rows, what string) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", what, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", what, err)
	}
	return out, nil
}
