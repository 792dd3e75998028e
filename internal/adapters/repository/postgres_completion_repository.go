package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// Upsert writes the day's record for (user, habit, date). The unique index
// on that triple makes the toggle idempotent: re-toggling overwrites
// completed/actual_value/notes and nothing else.
func (r *PostgresCompletionRepository) Upsert(ctx context.Context, c *domain.Completion) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO habit_completions (
			id, user_id, habit_id, date, completed, actual_value, notes, created_at, updated_at
		) VALUES (
			:id, :user_id, :habit_id, :date, :completed, :actual_value, :notes, :created_at, :updated_at
		)
		ON CONFLICT (user_id, habit_id, date) DO UPDATE SET
			completed = EXCLUDED.completed,
			actual_value = EXCLUDED.actual_value,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, c); err != nil {
		return fmt.Errorf("failed to upsert completion: %w", err)
	}

	return nil
}

func (r *PostgresCompletionRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	query := `
		SELECT * FROM habit_completions
		WHERE user_id = $1 AND date = $2`

	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &completions, query, userID, domain.Midnight(date)); err != nil {
		return nil, fmt.Errorf("failed to list completions by date: %w", err)
	}

	return completions, nil
}

func (r *PostgresCompletionRepository) History(ctx context.Context, userID, habitID string, windowDays int) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}

	from := domain.Midnight(time.Now().UTC()).AddDate(0, 0, -windowDays)

	query := `
		SELECT * FROM habit_completions
		WHERE user_id = $1 AND habit_id = $2 AND date >= $3
		ORDER BY date DESC`

	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &completions, query, userID, habitID, from); err != nil {
		return nil, fmt.Errorf("failed to load completion history: %w", err)
	}

	return completions, nil
}

func (r *PostgresCompletionRepository) DailyCounts(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCount, error) {
	counts := []*domain.DailyCount{}

	query := `
		SELECT
			to_char(date, 'YYYY-MM-DD') AS date,
			count(*) FILTER (WHERE completed) AS completed_count,
			count(*) AS total_habits
		FROM habit_completions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		GROUP BY date
		ORDER BY date ASC`

	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &counts, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("failed to aggregate daily counts: %w", err)
	}

	return counts, nil
}

func (r *PostgresCompletionRepository) Chart(ctx context.Context, userID string, kind domain.HabitKind, limit int) ([]*domain.ChartPoint, error) {
	points := []*domain.ChartPoint{}

	query := `
		SELECT
			to_char(c.date, 'YYYY-MM-DD') AS date,
			c.completed AS completed,
			c.actual_value AS actual_value
		FROM habit_completions c
		INNER JOIN habits h ON h.id = c.habit_id
		WHERE c.user_id = $1 AND h.kind = $2
		ORDER BY c.date ASC
		LIMIT $3`

	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &points, query, userID, kind, limit); err != nil {
		return nil, fmt.Errorf("failed to load habit chart: %w", err)
	}

	return points, nil
}
