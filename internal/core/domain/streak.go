package domain

import (
	"sort"
	"time"
)

// HabitStreak tracks consecutive completed days for one habit. BestStreak is
// a high-water mark: it never decreases, and it is always persisted together
// with CurrentStreak in the same write.
type HabitStreak struct {
	ID                string     `json:"id" db:"id"`
	UserID            string     `json:"user_id" db:"user_id"`
	HabitID           string     `json:"habit_id" db:"habit_id"`
	CurrentStreak     int        `json:"current_streak" db:"current_streak"`
	BestStreak        int        `json:"best_streak" db:"best_streak"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty" db:"last_completed_date"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// CurrentStreak counts consecutive completed calendar days ending at ref.
// The walk starts at ref itself: a completed yesterday without a completed
// today yields 0, not 1. That is the product's historical behavior and is
// relied on by the streak reset flow, so keep the strict equality check.
//
// The history may arrive unsorted or with duplicate dates; completed records
// are deduped by date and sorted descending before the walk.
func CurrentStreak(history []*Completion, ref time.Time) int {
	if len(history) == 0 {
		return 0
	}

	seen := make(map[time.Time]bool, len(history))
	var dates []time.Time
	for _, c := range history {
		if !c.Completed {
			continue
		}
		d := Midnight(c.Date)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}

	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	today := Midnight(ref)

	streak := 0
	for i, d := range dates {
		expected := today.AddDate(0, 0, -i)
		if !d.Equal(expected) {
			break
		}
		streak++
	}

	return streak
}

// UpdateBestStreak returns the new high-water mark for a streak pair.
func UpdateBestStreak(current, previousBest int) int {
	if current > previousBest {
		return current
	}
	return previousBest
}
