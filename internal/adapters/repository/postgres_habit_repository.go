package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
		INSERT INTO habits (
			id, user_id, kind, display_name, emoji,
			initial_target, current_target, unit,
			created_at, updated_at
		) VALUES (
			:id, :user_id, :kind, :display_name, :emoji,
			:initial_target, :current_target, :unit,
			:created_at, :updated_at
		)`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, h); err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit
	query := `SELECT * FROM habits WHERE id = $1`

	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &h, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to fetch habit: %w", err)
	}

	return &h, nil
}

func (r *PostgresHabitRepository) GetByKind(ctx context.Context, userID string, kind domain.HabitKind) (*domain.Habit, error) {
	var h domain.Habit
	query := `SELECT * FROM habits WHERE user_id = $1 AND kind = $2`

	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &h, query, userID, kind); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to fetch habit by kind: %w", err)
	}

	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}

	query := `SELECT * FROM habits WHERE user_id = $1 ORDER BY created_at ASC`

	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &habits, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	return habits, nil
}

func (r *PostgresHabitRepository) UpdateTarget(ctx context.Context, habitID, target string) error {
	query := `
		UPDATE habits
		SET current_target = $1, updated_at = NOW()
		WHERE id = $2`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, target, habitID)
	if err != nil {
		return fmt.Errorf("failed to update target: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
