// Package testutil provides shared test fixtures for study records and
// snapshots.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fbarbosa/medstudy/internal/study"
)

// RecordOption configures optional fields on a fixture record.
type RecordOption func(*study.StudyRecord)

// WithScore sets the stored performance score.
func WithScore(score int) RecordOption {
	return func(r *study.StudyRecord) {
		r.PerformanceScore = score
	}
}

// WithTopic sets the topic label.
func WithTopic(topic string) RecordOption {
	return func(r *study.StudyRecord) {
		r.Topic = topic
	}
}

// WithNotes sets the free-text notes.
func WithNotes(notes string) RecordOption {
	return func(r *study.StudyRecord) {
		r.Notes = notes
	}
}

// WithNextReview sets the next review date.
func WithNextReview(date study.Date) RecordOption {
	return func(r *study.StudyRecord) {
		r.NextReview = date
	}
}

// WithStudySeconds sets the session length.
func WithStudySeconds(seconds int) RecordOption {
	return func(r *study.StudyRecord) {
		r.StudySeconds = seconds
	}
}

// Record builds a study record studied on the given date. The id is derived
// from the date so fixtures stay distinct and deterministic.
func Record(id int64, disciplineID int, studyDate study.Date, opts ...RecordOption) study.StudyRecord {
	record := study.StudyRecord{
		ID:               id,
		DisciplineID:     disciplineID,
		Topic:            fmt.Sprintf("Topic %d", id),
		CorrectAnswers:   16,
		TotalQuestions:   20,
		PerformanceScore: 80,
		StudyDate:        studyDate,
		StudySeconds:     1800,
		CreatedAt:        time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		NextReview:       studyDate.AddDays(1),
	}
	for _, opt := range opts {
		opt(&record)
	}
	return record
}

// Disciplines returns a small fixture discipline set with one built-in and
// one custom entry.
func Disciplines() []study.Discipline {
	return []study.Discipline{
		{ID: 1, Name: "Cardiology", Topics: []string{"Arrhythmias", "Heart Failure"}},
		{ID: 2, Name: "Radiology", Topics: []string{"Chest X-Ray"}, IsCustom: true},
	}
}

// WriteConfigFile writes a minimal config file into dir and returns its
// path.
func WriteConfigFile(t *testing.T, dir string) string {
	t.Helper()

	content := fmt.Sprintf(`storage:
  backend: file
  file: %s
goals:
  daily_goal: 5
`, filepath.Join(dir, "medstudy.yml"))

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
