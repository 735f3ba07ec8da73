package study

import (
	"sort"
	"strings"
)

// PerformanceBand is an inclusive [Min,Max] range on the performance score,
// e.g. 60-79.
type PerformanceBand struct {
	Min int
	Max int
}

// Criteria is a composable set of history filters. Every field is optional;
// the zero value of a field means no filtering on that axis. Present
// criteria AND together.
type Criteria struct {
	// SearchText matches case-insensitively as a substring of the topic,
	// the resolved discipline name, or the notes. Any of the three matching
	// qualifies the record.
	SearchText string

	// DisciplineID filters on an exact discipline reference. Zero means no
	// discipline filter.
	DisciplineID int

	// DateFrom and DateTo are inclusive bounds on the study date.
	DateFrom Date
	DateTo   Date

	// Band restricts the performance score to an inclusive range.
	Band *PerformanceBand
}

// QueryResult is the ordered matches plus the post-filter count.
type QueryResult struct {
	Matches    []StudyRecord
	TotalCount int
}

// Query filters the record set by the given criteria, then sorts by study
// date descending. The sort is stable so records sharing a study date keep
// their input order. Empty criteria is the identity filter.
func Query(records []StudyRecord, disciplines []Discipline, criteria Criteria) QueryResult {
	search := strings.ToLower(strings.TrimSpace(criteria.SearchText))

	matches := make([]StudyRecord, 0, len(records))
	for _, r := range records {
		if search != "" && !matchesSearch(r, disciplines, search) {
			continue
		}
		if criteria.DisciplineID != 0 && r.DisciplineID != criteria.DisciplineID {
			continue
		}
		if !criteria.DateFrom.IsZero() && r.StudyDate.Before(criteria.DateFrom) {
			continue
		}
		if !criteria.DateTo.IsZero() && r.StudyDate.After(criteria.DateTo) {
			continue
		}
		if criteria.Band != nil && (r.PerformanceScore < criteria.Band.Min || r.PerformanceScore > criteria.Band.Max) {
			continue
		}
		matches = append(matches, r)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[j].StudyDate.Before(matches[i].StudyDate)
	})

	return QueryResult{Matches: matches, TotalCount: len(matches)}
}

func matchesSearch(r StudyRecord, disciplines []Discipline, search string) bool {
	if strings.Contains(strings.ToLower(r.Topic), search) {
		return true
	}
	if name := DisciplineName(disciplines, r.DisciplineID); name != "" &&
		strings.Contains(strings.ToLower(name), search) {
		return true
	}
	return r.Notes != "" && strings.Contains(strings.ToLower(r.Notes), search)
}
