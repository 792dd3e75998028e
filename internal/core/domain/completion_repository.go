package domain

import (
	"context"
	"time"
)

// CompletionRepository persists daily habit completions. Toggling the same
// (user, habit, date) twice must overwrite in place, never duplicate.
type CompletionRepository interface {
	// Upsert writes the completion keyed by (user_id, habit_id, date).
	// Last write wins for completed/actual_value/notes.
	Upsert(ctx context.Context, c *Completion) error

	// ListByDate retrieves every completion a user logged on one date.
	ListByDate(ctx context.Context, userID string, date time.Time) ([]*Completion, error)

	// History retrieves a habit's completions for the last windowDays days,
	// most recent first.
	History(ctx context.Context, userID, habitID string, windowDays int) ([]*Completion, error)

	// DailyCounts aggregates completed/total per day over a date range, for
	// the weekly chart.
	DailyCounts(ctx context.Context, userID string, from, to time.Time) ([]*DailyCount, error)

	// Chart returns up to limit chronological points for one habit kind.
	Chart(ctx context.Context, userID string, kind HabitKind, limit int) ([]*ChartPoint, error)
}

// StreakRepository persists per-habit streak pairs. Implementations must
// write current and best in a single statement so no reader ever observes a
// fresh current with a stale, smaller best.
type StreakRepository interface {
	// Upsert writes the streak pair; best is raised to at least current and
	// never lowered.
	Upsert(ctx context.Context, userID, habitID string, current int, lastCompleted *time.Time) error

	// ListByUserID retrieves all streak rows for a user.
	ListByUserID(ctx context.Context, userID string) ([]*HabitStreak, error)
}
