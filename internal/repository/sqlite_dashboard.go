package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/sprout/internal/db"
	"github.com/alexanderramin/sprout/internal/domain"
)

// SQLiteDashboardRepo implements DashboardRepo using a SQLite database.
type SQLiteDashboardRepo struct {
	db db.DBTX
}

// NewSQLiteDashboardRepo creates a new SQLiteDashboardRepo.
func NewSQLiteDashboardRepo(conn db.DBTX) *SQLiteDashboardRepo {
	return &SQLiteDashboardRepo{db: conn}
}

func (r *SQLiteDashboardRepo) Create(ctx context.Context, d *domain.DashboardContent) error {
	query := `INSERT INTO dashboard_content (id, user_id, date, daily_quote, focus_area, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.UserID, d.Date, d.DailyQuote, d.FocusArea, d.Source, formatTime(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting dashboard content: %w", err)
	}
	return nil
}

func (r *SQLiteDashboardRepo) GetByDate(ctx context.Context, userID, date string) (*domain.DashboardContent, error) {
	query := `SELECT id, user_id, date, daily_quote, focus_area, source, created_at
		FROM dashboard_content WHERE user_id = ? AND date = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1`
	var d domain.DashboardContent
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&d.ID, &d.UserID, &d.Date, &d.DailyQuote, &d.FocusArea, &d.Source, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("dashboard content: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning dashboard content: %w", err)
	}
	t, err := parseTime(createdAt, "dashboard created_at")
	if err != nil {
		return nil, err
	}
	d.CreatedAt = t
	return &d, nil
}

func (r *SQLiteDashboardRepo) DeleteByDate(ctx context.Context, userID, date string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM dashboard_content WHERE user_id = ? AND date = ?`, userID, date)
	if err != nil {
		return fmt.Errorf("deleting dashboard content: %w", err)
	}
	return nil
}
