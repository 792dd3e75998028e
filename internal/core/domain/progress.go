package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var ErrProgressNotFound = errors.New("user progress not found")

// UserProgress is the per-user program counter: which day of the 66 the user
// is on, and the whole-program streak (a day counts when every habit was
// completed). BestStreak follows the same atomic-pair rule as HabitStreak.
type UserProgress struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"user_id" db:"user_id"`
	CurrentDay         int       `json:"current_day" db:"current_day"`
	StartDate          time.Time `json:"start_date" db:"start_date"`
	TotalDaysCompleted int       `json:"total_days_completed" db:"total_days_completed"`
	CurrentStreak      int       `json:"current_streak" db:"current_streak"`
	BestStreak         int       `json:"best_streak" db:"best_streak"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

func NewUserProgress(userID string, startDate time.Time) *UserProgress {
	now := time.Now().UTC()

	return &UserProgress{
		ID:         uuid.NewString(),
		UserID:     userID,
		CurrentDay: 1,
		StartDate:  Midnight(startDate),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ProgramDay derives the 1-based day counter from the start date, clamped to
// the program length. A start date in the future still reads as day 1.
func ProgramDay(startDate, ref time.Time) int {
	days := int(Midnight(ref).Sub(Midnight(startDate)).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	if days > TotalProgramDays {
		return TotalProgramDays
	}
	return days
}

// CompletionPercentage is the share of habits ticked off today, rounded to
// the nearest whole percent.
func CompletionPercentage(completions []*Completion, totalHabits int) int {
	if totalHabits == 0 {
		return 0
	}
	completed := 0
	for _, c := range completions {
		if c.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(totalHabits) * 100))
}

// MotivationalMessage picks the encouragement line shown under the daily
// checklist, by completion ratio.
func MotivationalMessage(completedCount, totalCount int) string {
	if totalCount == 0 {
		return "Just getting started! Let's build some momentum! 🚀"
	}

	percentage := float64(completedCount) / float64(totalCount) * 100

	switch {
	case percentage == 100:
		return "Perfect day! You're unstoppable! 🏆"
	case percentage >= 80:
		return "Amazing progress! Keep crushing it! 🔥"
	case percentage >= 60:
		return "Great momentum! You're doing awesome! 💪"
	case percentage >= 40:
		return "Good start! Keep building that streak! ⭐"
	case percentage >= 20:
		return "Every step counts! You've got this! 💎"
	default:
		return "Just getting started! Let's build some momentum! 🚀"
	}
}

// StreakEmoji maps a streak length to its badge.
func StreakEmoji(streak int) string {
	switch {
	case streak >= 30:
		return "🔥"
	case streak >= 21:
		return "⚡"
	case streak >= 14:
		return "💪"
	case streak >= 7:
		return "🌟"
	case streak >= 3:
		return "✨"
	default:
		return "💎"
	}
}

// DailyCount is one bar of the weekly progress chart.
type DailyCount struct {
	Date           string `json:"date" db:"date"`
	CompletedCount int    `json:"completed_count" db:"completed_count"`
	TotalHabits    int    `json:"total_habits" db:"total_habits"`
}

// ChartPoint is one point of a habit's 30-day history chart.
type ChartPoint struct {
	Date        string `json:"date" db:"date"`
	Completed   bool   `json:"completed" db:"completed"`
	ActualValue string `json:"actual_value" db:"actual_value"`
}

func (p *UserProgress) String() string {
	return fmt.Sprintf("day %d/%d, streak %d (best %d)", p.CurrentDay, TotalProgramDays, p.CurrentStreak, p.BestStreak)
}
