package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

type PostgresStreakRepository struct {
	db *sqlx.DB
}

func NewPostgresStreakRepository(db *sqlx.DB) *PostgresStreakRepository {
	return &PostgresStreakRepository{db: db}
}

// Upsert writes the streak pair in one statement. GREATEST keeps best_streak
// a monotonic watermark and guarantees no reader ever sees a current without
// its matching best.
func (r *PostgresStreakRepository) Upsert(ctx context.Context, userID, habitID string, current int, lastCompleted *time.Time) error {
	query := `
		INSERT INTO habit_streaks (
			id, user_id, habit_id, current_streak, best_streak, last_completed_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id, habit_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			best_streak = GREATEST(habit_streaks.best_streak, EXCLUDED.current_streak),
			last_completed_date = EXCLUDED.last_completed_date,
			updated_at = NOW()`

	if _, err := ext(ctx, r.db).ExecContext(ctx, query, uuid.NewString(), userID, habitID, current, lastCompleted); err != nil {
		return fmt.Errorf("failed to upsert habit streak: %w", err)
	}

	return nil
}

func (r *PostgresStreakRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitStreak, error) {
	streaks := []*domain.HabitStreak{}

	query := `SELECT * FROM habit_streaks WHERE user_id = $1`

	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &streaks, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list habit streaks: %w", err)
	}

	return streaks, nil
}
