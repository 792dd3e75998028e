package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise66app/rise66-api/internal/core/domain"
	"github.com/rise66app/rise66-api/internal/core/services"
)

type completionFixture struct {
	svc         *services.CompletionService
	habits      *mockHabitRepo
	completions *mockCompletionRepo
	streaks     *mockStreakRepo
	tx          *mockTransactor
	habit       *domain.Habit
}

func newCompletionFixture(t *testing.T) *completionFixture {
	t.Helper()

	habits := newMockHabitRepo()
	completions := newMockCompletionRepo()
	streaks := newMockStreakRepo()
	progress := newMockProgressRepo()
	tx := &mockTransactor{}

	habit, err := domain.NewHabit("user-1", domain.KindRunning)
	require.NoError(t, err)
	require.NoError(t, habits.Create(context.Background(), habit))

	worker := newIdleWorker(habits, progress, completions)
	svc := services.NewCompletionService(completions, streaks, habits, tx, worker)

	return &completionFixture{
		svc:         svc,
		habits:      habits,
		completions: completions,
		streaks:     streaks,
		tx:          tx,
		habit:       habit,
	}
}

func (f *completionFixture) toggle(t *testing.T, date time.Time, completed bool) *domain.Completion {
	t.Helper()
	c, err := f.svc.Toggle(context.Background(), services.ToggleInput{
		UserID:    "user-1",
		HabitID:   f.habit.ID,
		Date:      date,
		Completed: completed,
	})
	require.NoError(t, err)
	return c
}

func TestCompletionService_ToggleWritesCompletionAndStreak(t *testing.T) {
	f := newCompletionFixture(t)
	today := time.Now().UTC()

	completion := f.toggle(t, today, true)

	assert.Equal(t, f.habit.ID, completion.HabitID)
	assert.True(t, completion.Completed)
	assert.Equal(t, domain.Midnight(today), completion.Date)

	// Both writes happened inside one transaction.
	assert.Equal(t, 1, f.tx.calls)

	streak := f.streaks.store[f.habit.ID]
	require.NotNil(t, streak)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.BestStreak)
	require.NotNil(t, streak.LastCompletedDate)
	assert.Equal(t, domain.Midnight(today), *streak.LastCompletedDate)
}

func TestCompletionService_ToggleExtendsStreak(t *testing.T) {
	f := newCompletionFixture(t)
	today := time.Now().UTC()

	f.toggle(t, today.AddDate(0, 0, -2), true)
	f.toggle(t, today.AddDate(0, 0, -1), true)
	f.toggle(t, today, true)

	streak := f.streaks.store[f.habit.ID]
	require.NotNil(t, streak)
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.BestStreak)
}

func TestCompletionService_ToggleOffKeepsBestStreak(t *testing.T) {
	f := newCompletionFixture(t)
	today := time.Now().UTC()

	f.toggle(t, today.AddDate(0, 0, -1), true)
	f.toggle(t, today, true)
	f.toggle(t, today, false)

	streak := f.streaks.store[f.habit.ID]
	require.NotNil(t, streak)
	assert.Equal(t, 0, streak.CurrentStreak, "unchecking today must reset the current streak")
	assert.Equal(t, 2, streak.BestStreak, "best streak never goes down")
}

func TestCompletionService_ToggleSameDayOverwrites(t *testing.T) {
	f := newCompletionFixture(t)
	today := time.Now().UTC()

	f.toggle(t, today, true)
	f.toggle(t, today, true)

	assert.Len(t, f.completions.store, 1)

	streak := f.streaks.store[f.habit.ID]
	require.NotNil(t, streak)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.BestStreak)
}

func TestCompletionService_ToggleUnknownHabit(t *testing.T) {
	f := newCompletionFixture(t)

	_, err := f.svc.Toggle(context.Background(), services.ToggleInput{
		UserID:    "user-1",
		HabitID:   "missing",
		Date:      time.Now().UTC(),
		Completed: true,
	})

	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	assert.Zero(t, f.tx.calls)
}

func TestCompletionService_ToggleForeignHabit(t *testing.T) {
	f := newCompletionFixture(t)

	_, err := f.svc.Toggle(context.Background(), services.ToggleInput{
		UserID:    "someone-else",
		HabitID:   f.habit.ID,
		Date:      time.Now().UTC(),
		Completed: true,
	})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, f.tx.calls)
}

func TestCompletionService_ToggleStreakWriteFailureAbortsTx(t *testing.T) {
	f := newCompletionFixture(t)
	f.streaks.simulateError = assert.AnError

	_, err := f.svc.Toggle(context.Background(), services.ToggleInput{
		UserID:    "user-1",
		HabitID:   f.habit.ID,
		Date:      time.Now().UTC(),
		Completed: true,
	})

	assert.Error(t, err)
}

func TestCompletionService_Today(t *testing.T) {
	f := newCompletionFixture(t)
	today := time.Now().UTC()

	f.toggle(t, today.AddDate(0, 0, -1), true)
	f.toggle(t, today, true)

	list, err := f.svc.Today(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, domain.Midnight(today), list[0].Date)
}
