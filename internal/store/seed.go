package store

import (
	"time"

	"github.com/fbarbosa/medstudy/internal/study"
)

// SeedSnapshot returns the built-in dataset used when no prior state exists:
// five disciplines with five topics each, a few sample study records, and
// default settings.
func SeedSnapshot() *study.Snapshot {
	return &study.Snapshot{
		Records:     seedRecords(),
		Disciplines: SeedDisciplines(),
		Settings:    study.DefaultSettings(),
	}
}

// SeedDisciplines returns the five built-in disciplines.
func SeedDisciplines() []study.Discipline {
	return []study.Discipline{
		{
			ID:     1,
			Name:   "Cardiology",
			Topics: []string{"Arrhythmias", "Heart Failure", "Coronary Artery Disease", "Hypertension", "Valvular Disease"},
		},
		{
			ID:     2,
			Name:   "Pulmonology",
			Topics: []string{"Asthma", "COPD", "Pneumonia", "Pleural Effusion", "Pulmonary Embolism"},
		},
		{
			ID:     3,
			Name:   "Gastroenterology",
			Topics: []string{"GERD", "Peptic Ulcer", "Hepatitis", "Cirrhosis", "Pancreatitis"},
		},
		{
			ID:     4,
			Name:   "Neurology",
			Topics: []string{"Stroke", "Epilepsy", "Headache", "Dementia", "Parkinson's Disease"},
		},
		{
			ID:     5,
			Name:   "Endocrinology",
			Topics: []string{"Diabetes", "Thyroid Disease", "Obesity", "Osteoporosis", "Adrenal Disorders"},
		},
	}
}

func seedRecords() []study.StudyRecord {
	return []study.StudyRecord{
		{
			ID:               1696435200001,
			DisciplineID:     1,
			Topic:            "Arrhythmias",
			CorrectAnswers:   18,
			TotalQuestions:   20,
			PerformanceScore: 90,
			StudyDate:        study.NewDate(2024, time.September, 28),
			StudySeconds:     1800,
			Notes:            "Review of basic concepts",
			CreatedAt:        time.Date(2024, time.September, 28, 10, 30, 0, 0, time.UTC),
			NextReview:       study.NewDate(2024, time.September, 29),
		},
		{
			ID:               1696435200002,
			DisciplineID:     2,
			Topic:            "Asthma",
			CorrectAnswers:   15,
			TotalQuestions:   20,
			PerformanceScore: 75,
			StudyDate:        study.NewDate(2024, time.September, 29),
			StudySeconds:     2100,
			Notes:            "Focus on differential diagnosis",
			CreatedAt:        time.Date(2024, time.September, 29, 14, 15, 0, 0, time.UTC),
			NextReview:       study.NewDate(2024, time.September, 30),
		},
		{
			ID:               1696435200003,
			DisciplineID:     4,
			Topic:            "Stroke",
			CorrectAnswers:   12,
			TotalQuestions:   20,
			PerformanceScore: 60,
			StudyDate:        study.NewDate(2024, time.September, 30),
			StudySeconds:     2700,
			Notes:            "Need to study treatment in more depth",
			CreatedAt:        time.Date(2024, time.September, 30, 9, 20, 0, 0, time.UTC),
			NextReview:       study.NewDate(2024, time.October, 1),
		},
	}
}
