package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

type PostgresJournalRepository struct {
	db *sqlx.DB
}

func NewPostgresJournalRepository(db *sqlx.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

func (r *PostgresJournalRepository) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry

	query := `SELECT * FROM journal_entries WHERE user_id = $1 AND date = $2`

	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &entry, query, userID, domain.Midnight(date)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJournalNotFound
		}
		return nil, fmt.Errorf("failed to fetch journal entry: %w", err)
	}

	return &entry, nil
}

func (r *PostgresJournalRepository) Upsert(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (
			id, user_id, date, mood, content, ai_affirmation, created_at, updated_at
		) VALUES (
			:id, :user_id, :date, :mood, :content, :ai_affirmation, :created_at, :updated_at
		)
		ON CONFLICT (user_id, date) DO UPDATE SET
			mood = EXCLUDED.mood,
			content = EXCLUDED.content,
			ai_affirmation = EXCLUDED.ai_affirmation,
			updated_at = EXCLUDED.updated_at`

	if _, err := sqlx.NamedExecContext(ctx, ext(ctx, r.db), query, entry); err != nil {
		return fmt.Errorf("failed to upsert journal entry: %w", err)
	}

	return nil
}

func (r *PostgresJournalRepository) Recent(ctx context.Context, userID string, limit int) ([]*domain.JournalEntry, error) {
	entries := []*domain.JournalEntry{}

	query := `
		SELECT * FROM journal_entries
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2`

	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &entries, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent journal entries: %w", err)
	}

	return entries, nil
}
