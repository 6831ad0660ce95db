package domain

import (
	"slices"

	"readrise/internal/platform/civil"
	"readrise/internal/platform/clock"
)

// SessionDayWindow bounds how many distinct session days feed a streak.
// A longest streak reaching further back than the window is under-reported.
const SessionDayWindow = 365

type Streak struct {
	Current int `json:"currentStreak" yaml:"currentStreak"`
	Longest int `json:"longestStreak" yaml:"longestStreak"`
}

// ComputeStreak derives the current and longest runs of consecutive days.
// The run ending at the most recent day only counts as current when that day
// is today or yesterday.
func ComputeStreak(days []civil.Date, today civil.Date) Streak {
	sorted := uniqueDescending(days)
	if len(sorted) == 0 {
		return Streak{}
	}

	active := sorted[0] == today || sorted[0] == today.AddDays(-1)

	longest, run, first := 1, 1, 0
	firstClosed := false
	for i := 1; i < len(sorted); i++ {
		if sorted[i].AddDays(1) == sorted[i-1] {
			run++
		} else {
			if !firstClosed {
				first = run
				firstClosed = true
			}
			run = 1
		}
		longest = max(longest, run)
	}
	if !firstClosed {
		first = run
	}

	current := 0
	if active {
		current = first
	}
	return Streak{Current: current, Longest: longest}
}

// ComputeStreakToday evaluates the streak against the clock's UTC day.
func ComputeStreakToday(days []civil.Date, c clock.Clock) Streak {
	return ComputeStreak(days, clock.Today(c))
}

func uniqueDescending(days []civil.Date) []civil.Date {
	out := slices.Clone(days)
	slices.SortFunc(out, func(a, b civil.Date) int { return b.Compare(a) })
	return slices.Compact(out)
}

// LastActive returns the most recent day, or nil when there is none.
func LastActive(days []civil.Date) *civil.Date {
	if len(days) == 0 {
		return nil
	}
	latest := days[0]
	for _, d := range days[1:] {
		if d.After(latest) {
			latest = d
		}
	}
	return &latest
}
