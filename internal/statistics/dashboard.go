// Package statistics derives dashboard aggregates from the study record set.
// Everything here is a pure function over the records it is given.
package statistics

import (
	"math"
	"sort"

	"github.com/fbarbosa/medstudy/internal/study"
)

// DashboardStats holds the headline numbers for the dashboard.
type DashboardStats struct {
	TotalStudies        int
	OverdueReviews      int
	TodayReviews        int
	AveragePerformance  int // rounded mean performance score, 0 when empty
	TotalStudySeconds   int
	AverageStudyMinutes int // rounded mean session length in minutes
	TodayStudies        int
	DailyGoal           int
	GoalProgress        float64 // percent toward the daily goal, capped at 100
	CurrentStreak       int
	LongestStreak       int
}

// Dashboard computes the headline stats for the current record set.
func Dashboard(records []study.StudyRecord, settings study.Settings) DashboardStats {
	stats := DashboardStats{
		TotalStudies:  len(records),
		DailyGoal:     settings.DailyGoal,
		CurrentStreak: settings.CurrentStreak,
		LongestStreak: settings.LongestStreak,
	}

	scoreSum := 0
	for _, r := range records {
		if r.NextReview.IsOverdue() {
			stats.OverdueReviews++
		}
		if r.NextReview.IsToday() {
			stats.TodayReviews++
		}
		if r.StudyDate.IsToday() {
			stats.TodayStudies++
		}
		scoreSum += r.PerformanceScore
		stats.TotalStudySeconds += r.StudySeconds
	}

	if len(records) > 0 {
		stats.AveragePerformance = int(math.Round(float64(scoreSum) / float64(len(records))))
		stats.AverageStudyMinutes = int(math.Round(float64(stats.TotalStudySeconds) / float64(len(records)) / 60))
	}
	if settings.DailyGoal > 0 {
		stats.GoalProgress = math.Min(float64(stats.TodayStudies)/float64(settings.DailyGoal)*100, 100)
	}
	return stats
}

// Buckets partitions records by review urgency.
type Buckets struct {
	Overdue  []study.StudyRecord
	DueToday []study.StudyRecord
	Upcoming []study.StudyRecord
}

// ReviewBuckets splits the record set into overdue, due-today, and upcoming
// reviews. Records with an unset next review fall into no bucket.
func ReviewBuckets(records []study.StudyRecord) Buckets {
	var buckets Buckets
	today := study.Today()
	for _, r := range records {
		switch {
		case r.NextReview.IsZero():
		case r.NextReview.Before(today):
			buckets.Overdue = append(buckets.Overdue, r)
		case r.NextReview.Equal(today):
			buckets.DueToday = append(buckets.DueToday, r)
		default:
			buckets.Upcoming = append(buckets.Upcoming, r)
		}
	}
	return buckets
}

// HeatmapDay is one cell of the activity heatmap.
type HeatmapDay struct {
	Date  study.Date
	Count int
	Level int // 0-3 intensity bucket
}

// ActivityHeatmap aggregates per-day study counts over a trailing window
// ending at the reference date, oldest day first.
func ActivityHeatmap(records []study.StudyRecord, reference study.Date, days int) []HeatmapDay {
	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[r.StudyDate.String()]++
	}

	heatmap := make([]HeatmapDay, 0, days)
	start := reference.AddDays(-(days - 1))
	for i := 0; i < days; i++ {
		date := start.AddDays(i)
		count := counts[date.String()]
		level := 0
		if count > 0 {
			level = 1
		}
		if count > 2 {
			level = 2
		}
		if count > 4 {
			level = 3
		}
		heatmap = append(heatmap, HeatmapDay{Date: date, Count: count, Level: level})
	}
	return heatmap
}

// TrendPoint is one sample of the performance trend series.
type TrendPoint struct {
	Date  study.Date
	Score int
}

// PerformanceTrend returns (study date, score) samples sorted ascending by
// date, ties keeping input order.
func PerformanceTrend(records []study.StudyRecord) []TrendPoint {
	sorted := append([]study.StudyRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StudyDate.Before(sorted[j].StudyDate)
	})

	trend := make([]TrendPoint, 0, len(sorted))
	for _, r := range sorted {
		trend = append(trend, TrendPoint{Date: r.StudyDate, Score: r.PerformanceScore})
	}
	return trend
}

// UnknownDisciplineLabel buckets records whose discipline reference matches
// nothing. Loose references are a valid state, not an error.
const UnknownDisciplineLabel = "Unknown discipline"

// CountByDiscipline counts studies per resolved discipline name.
func CountByDiscipline(records []study.StudyRecord, disciplines []study.Discipline) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		name := study.DisciplineName(disciplines, r.DisciplineID)
		if name == "" {
			name = UnknownDisciplineLabel
		}
		counts[name]++
	}
	return counts
}
