package domain

import (
	"fmt"
	"strconv"
)

// ComputeTarget derives a habit's difficulty target for a given program day.
// Targets only ever get harder (or stay flat) as the day counter grows, each
// kind with its own ramp and hard floor/ceiling. Days past the 66-day program
// keep using the same formulas. The function is pure and never fails; a day
// below 1 is clamped to 1.
func ComputeTarget(kind HabitKind, day int) string {
	if day < 1 {
		day = 1
	}
	week := (day + 6) / 7

	switch kind {
	case KindWakeup:
		// 7:30 AM, 30 minutes earlier every 2 weeks, never before 5:00 AM.
		minute := 30 - (week-1)/2*30
		if minute < 0 {
			minute = 0
		}
		hour := 7
		if minute == 0 && week > 4 {
			hour = 7 - (week-5)/2
		}
		if hour < 5 {
			hour = 5
		}
		return fmt.Sprintf("%d:%02d AM", hour, minute)

	case KindRunning:
		// 2 KM plus half a kilometer per week, capped at 6 KM.
		distance := 2.0 + float64(week-1)*0.5
		if distance > 6 {
			distance = 6
		}
		return fmt.Sprintf("%.1f KM", distance)

	case KindWorkout:
		// 30 mins plus 15 every 2 weeks, capped at 90.
		duration := 30 + (week-1)/2*15
		if duration > 90 {
			duration = 90
		}
		return fmt.Sprintf("%d mins", duration)

	case KindPushups:
		// 10 reps plus 5 every 3 elapsed days, uncapped.
		reps := 10 + (day-1)/3*5
		return fmt.Sprintf("%d reps", reps)

	case KindMeditation:
		// 5 mins plus 2.5 every 2 weeks, capped at 20.
		duration := 5 + float64((week-1)/2)*2.5
		if duration > 20 {
			duration = 20
		}
		return strconv.FormatFloat(duration, 'f', -1, 64) + " mins"

	case KindWater:
		// 2L plus 0.25L every 3 weeks, capped at 3L.
		amount := 2 + float64((week-1)/3)*0.25
		if amount > 3 {
			amount = 3
		}
		return fmt.Sprintf("%.2fL", amount)

	case KindSocialMedia:
		// Limit shrinks from 90 mins by 15 every 2 weeks, floored at 10.
		mins := 90 - (week-1)/2*15
		if mins < 10 {
			mins = 10
		}
		if mins >= 60 {
			return fmt.Sprintf("%dh %dm", mins/60, mins%60)
		}
		return fmt.Sprintf("%d mins", mins)

	case KindReading:
		return "10 pages"

	case KindSitups:
		// 10 reps plus 5 per week, uncapped.
		reps := 10 + (week-1)*5
		return fmt.Sprintf("%d reps", reps)

	default:
		return "Complete"
	}
}

// RefreshTargets stamps every habit with its target for the given program day.
func RefreshTargets(habits []*Habit, day int) {
	for _, h := range habits {
		h.CurrentTarget = ComputeTarget(h.Kind, day)
	}
}
