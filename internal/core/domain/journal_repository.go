package domain

import (
	"context"
	"time"
)

type JournalRepository interface {
	// GetByDate retrieves the user's entry for one date, if any.
	GetByDate(ctx context.Context, userID string, date time.Time) (*JournalEntry, error)

	// Upsert writes the entry keyed by (user_id, date).
	Upsert(ctx context.Context, entry *JournalEntry) error

	// Recent retrieves the newest entries, most recent date first.
	Recent(ctx context.Context, userID string, limit int) ([]*JournalEntry, error)
}

type ProgressRepository interface {
	// Get retrieves the user's progress row.
	Get(ctx context.Context, userID string) (*UserProgress, error)

	// Create persists a fresh day-1 progress row.
	Create(ctx context.Context, p *UserProgress) error

	// UpdateDay advances the persisted program-day counter.
	UpdateDay(ctx context.Context, userID string, day int) error

	// UpdateStreak writes the whole-program streak pair and the completed-day
	// total; best is raised to at least current in the same statement.
	UpdateStreak(ctx context.Context, userID string, current, totalDaysCompleted int) error

	// ListUserIDs returns every user with a progress row, for the nightly
	// rollover.
	ListUserIDs(ctx context.Context) ([]string, error)
}
