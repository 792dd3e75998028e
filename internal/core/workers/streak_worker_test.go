package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise66app/rise66-api/internal/core/domain"
)

func TestProgramStreak(t *testing.T) {
	today := time.Date(2025, 9, 15, 10, 30, 0, 0, time.UTC)
	dayKey := func(n int) string {
		return today.AddDate(0, 0, -n).Format("2006-01-02")
	}
	full := func(n int) *domain.DailyCount {
		return &domain.DailyCount{Date: dayKey(n), CompletedCount: 9, TotalHabits: 9}
	}
	partial := func(n, completed int) *domain.DailyCount {
		return &domain.DailyCount{Date: dayKey(n), CompletedCount: completed, TotalHabits: 9}
	}

	tests := []struct {
		name        string
		counts      []*domain.DailyCount
		wantCurrent int
		wantTotal   int
	}{
		{
			name:        "No counts",
			counts:      []*domain.DailyCount{},
			wantCurrent: 0,
			wantTotal:   0,
		},
		{
			name:        "Full day today",
			counts:      []*domain.DailyCount{full(0)},
			wantCurrent: 1,
			wantTotal:   1,
		},
		{
			name:        "Full day yesterday but not today",
			counts:      []*domain.DailyCount{full(1)},
			wantCurrent: 0,
			wantTotal:   1,
		},
		{
			name:        "Three consecutive full days ending today",
			counts:      []*domain.DailyCount{full(0), full(1), full(2)},
			wantCurrent: 3,
			wantTotal:   3,
		},
		{
			name:        "Partial day breaks the walk",
			counts:      []*domain.DailyCount{full(0), partial(1, 5), full(2)},
			wantCurrent: 1,
			wantTotal:   2,
		},
		{
			name:        "Gap breaks the walk but total keeps counting",
			counts:      []*domain.DailyCount{full(0), full(1), full(4), full(5)},
			wantCurrent: 2,
			wantTotal:   4,
		},
		{
			name:        "Partial today yields zero",
			counts:      []*domain.DailyCount{partial(0, 8), full(1), full(2)},
			wantCurrent: 0,
			wantTotal:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCurrent, gotTotal := programStreak(tt.counts, 9, today)
			assert.Equal(t, tt.wantCurrent, gotCurrent, "Current streak mismatch")
			assert.Equal(t, tt.wantTotal, gotTotal, "Total full days mismatch")
		})
	}
}

func TestProgramStreak_NoHabits(t *testing.T) {
	current, total := programStreak(nil, 0, time.Now().UTC())
	assert.Zero(t, current)
	assert.Zero(t, total)
}

type fakeHabitRepo struct {
	habits  []*domain.Habit
	targets map[string]string
}

func (f *fakeHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return f.habits, nil
}

func (f *fakeHabitRepo) UpdateTarget(ctx context.Context, habitID, target string) error {
	f.targets[habitID] = target
	return nil
}

type fakeProgressRepo struct {
	progress *domain.UserProgress
	day      int
	current  int
	total    int
}

func (f *fakeProgressRepo) Get(ctx context.Context, userID string) (*domain.UserProgress, error) {
	clone := *f.progress
	return &clone, nil
}

func (f *fakeProgressRepo) UpdateDay(ctx context.Context, userID string, day int) error {
	f.day = day
	return nil
}

func (f *fakeProgressRepo) UpdateStreak(ctx context.Context, userID string, current, totalDaysCompleted int) error {
	f.current = current
	f.total = totalDaysCompleted
	return nil
}

type fakeCompletionRepo struct {
	counts []*domain.DailyCount
}

func (f *fakeCompletionRepo) DailyCounts(ctx context.Context, userID string, from, to time.Time) ([]*domain.DailyCount, error) {
	return f.counts, nil
}

func TestProcessJob_RollsDayAndTargetsForward(t *testing.T) {
	now := time.Now().UTC()

	habit, err := domain.NewHabit("user-1", domain.KindWakeup)
	require.NoError(t, err)

	habits := &fakeHabitRepo{
		habits:  []*domain.Habit{habit},
		targets: make(map[string]string),
	}
	progress := &fakeProgressRepo{
		progress: &domain.UserProgress{
			UserID:     "user-1",
			CurrentDay: 1,
			StartDate:  now.AddDate(0, 0, -14),
		},
	}
	completions := &fakeCompletionRepo{
		counts: []*domain.DailyCount{
			{Date: now.Format("2006-01-02"), CompletedCount: 1, TotalHabits: 1},
			{Date: now.AddDate(0, 0, -1).Format("2006-01-02"), CompletedCount: 1, TotalHabits: 1},
		},
	}

	w := NewStreakWorker(habits, progress, completions)
	w.processJob(context.Background(), StreakJob{UserID: "user-1"})

	// 14 days after start means program day 15, week 3.
	assert.Equal(t, 15, progress.day)
	assert.Equal(t, "7:00 AM", habits.targets[habit.ID])
	assert.Equal(t, 2, progress.current)
	assert.Equal(t, 2, progress.total)
}
