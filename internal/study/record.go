package study

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// StudyRecord is one completed study session. Every field except NextReview
// is immutable after creation; NextReview is rewritten by the scheduler each
// time a review is completed.
type StudyRecord struct {
	ID               int64     `yaml:"id" json:"id"`
	DisciplineID     int       `yaml:"discipline_id" json:"discipline"`
	Topic            string    `yaml:"topic" json:"topic"`
	CorrectAnswers   int       `yaml:"correct_answers" json:"correctAnswers"`
	TotalQuestions   int       `yaml:"total_questions" json:"totalQuestions"`
	PerformanceScore int       `yaml:"performance_score" json:"percentage"`
	StudyDate        Date      `yaml:"study_date" json:"studyDate"`
	StudySeconds     int       `yaml:"study_seconds,omitempty" json:"studyTime"`
	Notes            string    `yaml:"notes,omitempty" json:"observations,omitempty"`
	CreatedAt        time.Time `yaml:"created_at" json:"createdAt"`
	NextReview       Date      `yaml:"next_review" json:"nextReview"`
}

// NewStudyRecordInput holds the caller-supplied fields for a new study
// session. Validation happens before a StudyRecord is constructed; invalid
// input never reaches the record set.
type NewStudyRecordInput struct {
	DisciplineID   int    `validate:"gt=0"`
	Topic          string `validate:"required"`
	CorrectAnswers int    `validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int    `validate:"gt=0"`
	StudyDate      Date
	StudySeconds   int `validate:"gte=0"`
	Notes          string
}

// NewStudyRecord validates the input and constructs a record. The
// performance score is derived once at creation time and stored; it is never
// recomputed. The initial next review is tomorrow regardless of score; the
// banded policy only applies when a review is completed.
func NewStudyRecord(in NewStudyRecordInput) (*StudyRecord, error) {
	if strings.TrimSpace(in.Topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if in.StudyDate.IsZero() {
		return nil, fmt.Errorf("%w: study date is required", ErrInvalidInput)
	}
	if err := validateStruct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	score := int(math.Round(float64(in.CorrectAnswers) / float64(in.TotalQuestions) * 100))
	now := time.Now()

	return &StudyRecord{
		ID:               now.UnixMilli(),
		DisciplineID:     in.DisciplineID,
		Topic:            strings.TrimSpace(in.Topic),
		CorrectAnswers:   in.CorrectAnswers,
		TotalQuestions:   in.TotalQuestions,
		PerformanceScore: score,
		StudyDate:        in.StudyDate,
		StudySeconds:     in.StudySeconds,
		Notes:            strings.TrimSpace(in.Notes),
		CreatedAt:        now,
		NextReview:       Today().AddDays(1),
	}, nil
}

// StudyDates collects the study date of every record, duplicates included.
func StudyDates(records []StudyRecord) []Date {
	dates := make([]Date, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.StudyDate)
	}
	return dates
}
