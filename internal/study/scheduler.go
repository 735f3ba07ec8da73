package study

import "math"

// Interval policy constants. The multiplier bands are applied first match
// wins: >= 80 grows the interval, 60-79 grows it slightly, below 60 shrinks
// it. Every result is floored at one day.
const (
	DefaultIntervalDays = 1

	highScoreThreshold = 80
	passScoreThreshold = 60

	highMultiplier  = 2.5
	passMultiplier  = 1.3
	lapseMultiplier = 0.6
)

// ReviewPlan is the scheduler's output: the interval that was applied and
// the resulting next review date.
type ReviewPlan struct {
	IntervalDays int
	NextReview   Date
}

// ScheduleNextReview maps a performance score and a prior interval to a new
// interval and next review date. The next review date is today plus the new
// interval, as a calendar addition.
//
// The prior interval is not carried forward between successive completions:
// callers pass DefaultIntervalDays on every completion, so repeated reviews
// do not compound intervals. This is a single-pass heuristic, not SM-2 with
// per-item interval history.
//
// Out-of-range input never aborts the caller's workflow: the scheduler fails
// safe to a one day interval due tomorrow.
func ScheduleNextReview(performanceScore int, priorIntervalDays int) ReviewPlan {
	if performanceScore < 0 || performanceScore > 100 || priorIntervalDays < 1 {
		return failSafePlan()
	}

	multiplier := lapseMultiplier
	switch {
	case performanceScore >= highScoreThreshold:
		multiplier = highMultiplier
	case performanceScore >= passScoreThreshold:
		multiplier = passMultiplier
	}

	// Round half away from zero on the multiplied value, then floor at one.
	interval := int(math.Round(float64(priorIntervalDays) * multiplier))
	if interval < 1 {
		interval = 1
	}

	return ReviewPlan{
		IntervalDays: interval,
		NextReview:   Today().AddDays(interval),
	}
}

func failSafePlan() ReviewPlan {
	return ReviewPlan{
		IntervalDays: DefaultIntervalDays,
		NextReview:   Today().AddDays(DefaultIntervalDays),
	}
}
