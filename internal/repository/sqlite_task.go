package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, user_id, date, title, description, category, time_estimate,
	priority, completed, related_goal_id, generated_at`

// Create appends t after the existing tasks of its (user, date); seq keeps
// the order the tasks were produced in.
func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (seq, ` + taskColumns + `)
		SELECT COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		FROM tasks WHERE user_id = ? AND date = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Date, t.Title, t.Description, string(t.Category), t.TimeEstimate,
		string(t.Priority), boolToInt(t.Completed), nullableString(t.RelatedGoalID),
		formatTime(t.GeneratedAt),
		t.UserID, t.Date,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
}

func (r *SQLiteTaskRepo) ListByDate(ctx context.Context, userID, date string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND date = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by date: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? ORDER BY date DESC, seq LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limitClause(limit))
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, category = ?, time_estimate = ?,
		priority = ?, completed = ?, related_goal_id = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, t.Description, string(t.Category), t.TimeEstimate, string(t.Priority),
		boolToInt(t.Completed), nullableString(t.RelatedGoalID), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task")
}

func (r *SQLiteTaskRepo) DeleteByDate(ctx context.Context, userID, date string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND date = ?`, userID, date)
	if err != nil {
		return 0, fmt.Errorf("deleting tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) ListCompletionByDate(ctx context.Context, userID string) ([]domain.DayCompletion, error) {
	query := `SELECT date, COUNT(*), COALESCE(SUM(completed), 0) FROM tasks
		WHERE user_id = ? GROUP BY date ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing task completion: %w", err)
	}
	defer rows.Close()

	var days []domain.DayCompletion
	for rows.Next() {
		var d domain.DayCompletion
		if err := rows.Scan(&d.Date, &d.Total, &d.Done); err != nil {
			return nil, fmt.Errorf("scanning task completion: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task completion: %w", err)
	}
	return days, nil
}

func (r *SQLiteTaskRepo) CountCompleted(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed = 1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting completed tasks: %w", err)
	}
	return n, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var category, priority, generatedAt string
	var completed int
	var goalID sql.NullString
	err := row.Scan(&t.ID, &t.UserID, &t.Date, &t.Title, &t.Description, &category,
		&t.TimeEstimate, &priority, &completed, &goalID, &generatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	ts, err := parseTime(generatedAt, "task generated_at")
	if err != nil {
		return nil, err
	}
	t.Category = domain.TaskCategory(category)
	t.Priority = domain.Priority(priority)
	t.Completed = intToBool(completed)
	t.RelatedGoalID = stringPtr(goalID)
	t.GeneratedAt = ts
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}
