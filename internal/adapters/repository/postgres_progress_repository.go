package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

type PostgresProgressRepository struct {
	db *sqlx.DB
}

func NewPostgresProgressRepository(db *sqlx.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

func (r *PostgresProgressRepository) Get(ctx context.Context, userID string) (*domain.UserProgress, error) {
	var p domain.UserProgress

	query := `SELECT * FROM user_progress WHERE user_id = $1`

	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &p, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to fetch user progress: %w", err)
	}

	return &p, nil
}

func (r *PostgresProgressRepository) Create(ctx context.Context, p *domain.UserProgress) error {
	query := `
		INSERT INTO user_progress (
			id, user_id, current_day, start_date, total_days_completed,
			current_streak, best_streak, created_at, updated_at
		) VALUES (
			:id, :user_id, :current_day, :start_date, :total_days_completed,
			:current_streak, :best_streak, :created_at, :updated_at
		)`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, p); err != nil {
		return fmt.Errorf("failed to insert user progress: %w", err)
	}

	return nil
}

func (r *PostgresProgressRepository) UpdateDay(ctx context.Context, userID string, day int) error {
	query := `
		UPDATE user_progress
		SET current_day = $1, updated_at = NOW()
		WHERE user_id = $2`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, day, userID)
	if err != nil {
		return fmt.Errorf("failed to update program day: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProgressNotFound
	}

	return nil
}

// UpdateStreak writes the whole-program streak pair and the completed-day
// total in one statement; GREATEST keeps the best a watermark.
func (r *PostgresProgressRepository) UpdateStreak(ctx context.Context, userID string, current, totalDaysCompleted int) error {
	query := `
		UPDATE user_progress
		SET current_streak = $1,
		    best_streak = GREATEST(best_streak, $1),
		    total_days_completed = $2,
		    updated_at = NOW()
		WHERE user_id = $3`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, current, totalDaysCompleted, userID)
	if err != nil {
		return fmt.Errorf("failed to update program streak: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProgressNotFound
	}

	return nil
}

func (r *PostgresProgressRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	ids := []string{}

	query := `SELECT user_id FROM user_progress`

	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &ids, query); err != nil {
		return nil, fmt.Errorf("failed to list progress user ids: %w", err)
	}

	return ids, nil
}
