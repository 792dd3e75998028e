package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCompletionNotFound = errors.New("habit completion not found")
	ErrInvalidDate        = errors.New("completion date is required")
)

// Completion is the per-day record of a habit: done or not, plus what was
// actually achieved. There is at most one record per (user, habit, date);
// toggling the same date again overwrites completed/actual_value in place.
type Completion struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	HabitID     string    `json:"habit_id" db:"habit_id"`
	Date        time.Time `json:"date" db:"date"`
	Completed   bool      `json:"completed" db:"completed"`
	ActualValue string    `json:"actual_value" db:"actual_value"`
	Notes       string    `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func NewCompletion(userID, habitID string, date time.Time, completed bool, actualValue string) *Completion {
	now := time.Now().UTC()

	return &Completion{
		ID:          uuid.NewString(),
		UserID:      userID,
		HabitID:     habitID,
		Date:        Midnight(date),
		Completed:   completed,
		ActualValue: actualValue,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrHabitInvalidUserID
	}
	if strings.TrimSpace(c.HabitID) == "" {
		return ErrHabitNotFound
	}
	if c.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Midnight truncates a timestamp to its UTC calendar date.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
