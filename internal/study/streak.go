package study

import "sort"

// ComputeStreak derives the consecutive-study-day streak from an unordered
// collection of study dates, measured backward from the reference date.
//
// The walk may start at the reference date or exactly one day before it, so
// a run that ended yesterday still counts as an active streak. A gap of two
// or more days terminates the walk. Days later than the reference are
// skipped. Duplicate dates count once.
func ComputeStreak(dates []Date, reference Date) int {
	if reference.IsZero() {
		return 0
	}

	unique := make(map[string]Date, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		unique[d.String()] = d
	}
	if len(unique) == 0 {
		return 0
	}

	sorted := make([]Date, 0, len(unique))
	for _, d := range unique {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[j].Before(sorted[i])
	})

	streak := 0
	cursor := reference
	for _, studyDate := range sorted {
		if studyDate.Equal(cursor) {
			streak++
			cursor = studyDate.AddDays(-1)
			continue
		}
		if studyDate.Before(cursor) {
			if studyDate.DaysUntil(cursor) != 1 {
				break
			}
			streak++
			cursor = studyDate.AddDays(-1)
		}
		// Dates after the cursor (future relative to the walk) are skipped.
	}
	return streak
}
