package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"

	"github.com/fbarbosa/medstudy/internal/database"
	"github.com/fbarbosa/medstudy/internal/study"
)

// DBRepository persists the snapshot in MySQL. Save replaces the full state
// in one transaction, matching the snapshot-at-a-time persistence contract.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS study_records (
	id BIGINT PRIMARY KEY,
	discipline_id INT NOT NULL,
	topic VARCHAR(255) NOT NULL,
	correct_answers INT NOT NULL,
	total_questions INT NOT NULL,
	performance_score INT NOT NULL,
	study_date CHAR(10) NOT NULL,
	study_seconds INT NOT NULL DEFAULT 0,
	notes TEXT,
	created_at DATETIME NOT NULL,
	next_review CHAR(10) NOT NULL
);
CREATE TABLE IF NOT EXISTS disciplines (
	id INT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	topics TEXT NOT NULL,
	is_custom BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS settings (
	id INT PRIMARY KEY,
	daily_goal INT NOT NULL,
	current_streak INT NOT NULL,
	longest_streak INT NOT NULL,
	last_study_date CHAR(10) NOT NULL DEFAULT ''
);
`

// Migrate creates the schema when it does not exist yet.
func (r *DBRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("db.ExecContext(schema) > %w", err)
	}
	return nil
}

type studyRecordRow struct {
	ID               int64     `db:"id"`
	DisciplineID     int       `db:"discipline_id"`
	Topic            string    `db:"topic"`
	CorrectAnswers   int       `db:"correct_answers"`
	TotalQuestions   int       `db:"total_questions"`
	PerformanceScore int       `db:"performance_score"`
	StudyDate        string    `db:"study_date"`
	StudySeconds     int       `db:"study_seconds"`
	Notes            string    `db:"notes"`
	CreatedAt        time.Time `db:"created_at"`
	NextReview       string    `db:"next_review"`
}

type disciplineRow struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Topics   string `db:"topics"`
	IsCustom bool   `db:"is_custom"`
}

type settingsRow struct {
	ID            int    `db:"id"`
	DailyGoal     int    `db:"daily_goal"`
	CurrentStreak int    `db:"current_streak"`
	LongestStreak int    `db:"longest_streak"`
	LastStudyDate string `db:"last_study_date"`
}

// Load reads the full snapshot. A database without a settings row is
// treated as empty state: it returns (nil, nil) so the caller seeds.
func (r *DBRepository) Load(ctx context.Context) (*study.Snapshot, error) {
	var settings settingsRow
	err := r.db.GetContext(ctx, &settings,
		"SELECT id, daily_goal, current_streak, longest_streak, last_study_date FROM settings WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(settings) > %w", err)
	}

	var recordRows []studyRecordRow
	if err := r.db.SelectContext(ctx, &recordRows,
		"SELECT * FROM study_records ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(study_records) > %w", err)
	}

	var disciplineRows []disciplineRow
	if err := r.db.SelectContext(ctx, &disciplineRows,
		"SELECT * FROM disciplines ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(disciplines) > %w", err)
	}

	snapshot := &study.Snapshot{
		Settings: study.Settings{
			DailyGoal:     settings.DailyGoal,
			CurrentStreak: settings.CurrentStreak,
			LongestStreak: settings.LongestStreak,
		},
	}
	if settings.LastStudyDate != "" {
		lastStudy, err := study.ParseDate(settings.LastStudyDate)
		if err != nil {
			return nil, fmt.Errorf("settings.last_study_date > %w", err)
		}
		snapshot.Settings.LastStudyDate = lastStudy
	}

	for _, row := range recordRows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		snapshot.Records = append(snapshot.Records, record)
	}
	for _, row := range disciplineRows {
		discipline, err := row.toDiscipline()
		if err != nil {
			return nil, err
		}
		snapshot.Disciplines = append(snapshot.Disciplines, discipline)
	}
	return snapshot, nil
}

func (row studyRecordRow) toRecord() (study.StudyRecord, error) {
	studyDate, err := study.ParseDate(row.StudyDate)
	if err != nil {
		return study.StudyRecord{}, fmt.Errorf("study_records.study_date (id=%d) > %w", row.ID, err)
	}
	nextReview, err := study.ParseDate(row.NextReview)
	if err != nil {
		return study.StudyRecord{}, fmt.Errorf("study_records.next_review (id=%d) > %w", row.ID, err)
	}
	return study.StudyRecord{
		ID:               row.ID,
		DisciplineID:     row.DisciplineID,
		Topic:            row.Topic,
		CorrectAnswers:   row.CorrectAnswers,
		TotalQuestions:   row.TotalQuestions,
		PerformanceScore: row.PerformanceScore,
		StudyDate:        studyDate,
		StudySeconds:     row.StudySeconds,
		Notes:            row.Notes,
		CreatedAt:        row.CreatedAt,
		NextReview:       nextReview,
	}, nil
}

func (row disciplineRow) toDiscipline() (study.Discipline, error) {
	var topics []string
	if err := json.Unmarshal([]byte(row.Topics), &topics); err != nil {
		return study.Discipline{}, fmt.Errorf("disciplines.topics (id=%d) > %w", row.ID, err)
	}
	return study.Discipline{
		ID:       row.ID,
		Name:     row.Name,
		Topics:   topics,
		IsCustom: row.IsCustom,
	}, nil
}

// Save replaces the stored snapshot in one transaction. Transient
// serialization failures are retried a few times before the error is
// surfaced.
func (r *DBRepository) Save(ctx context.Context, snapshot *study.Snapshot) error {
	return retry.Do(
		func() error {
			return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
				return replaceSnapshot(ctx, tx, snapshot)
			})
		},
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
	)
}

// isRetryableError matches MySQL deadlock and lock wait timeout errors,
// which are safe to retry for a full-replace transaction.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Deadlock found") ||
		strings.Contains(msg, "try restarting transaction") ||
		strings.Contains(msg, "Lock wait timeout")
}

func replaceSnapshot(ctx context.Context, tx *sqlx.Tx, snapshot *study.Snapshot) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM study_records"); err != nil {
		return fmt.Errorf("tx.ExecContext(delete study_records) > %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM disciplines"); err != nil {
		return fmt.Errorf("tx.ExecContext(delete disciplines) > %w", err)
	}

	for _, record := range snapshot.Records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO study_records (id, discipline_id, topic, correct_answers, total_questions, performance_score, study_date, study_seconds, notes, created_at, next_review)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID, record.DisciplineID, record.Topic, record.CorrectAnswers,
			record.TotalQuestions, record.PerformanceScore, record.StudyDate.String(),
			record.StudySeconds, record.Notes, record.CreatedAt, record.NextReview.String()); err != nil {
			return fmt.Errorf("tx.ExecContext(insert study_record) > %w", err)
		}
	}

	for _, discipline := range snapshot.Disciplines {
		topics, err := json.Marshal(discipline.Topics)
		if err != nil {
			return fmt.Errorf("json.Marshal(topics) > %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO disciplines (id, name, topics, is_custom) VALUES (?, ?, ?, ?)",
			discipline.ID, discipline.Name, string(topics), discipline.IsCustom); err != nil {
			return fmt.Errorf("tx.ExecContext(insert discipline) > %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`REPLACE INTO settings (id, daily_goal, current_streak, longest_streak, last_study_date)
		VALUES (1, ?, ?, ?, ?)`,
		snapshot.Settings.DailyGoal, snapshot.Settings.CurrentStreak,
		snapshot.Settings.LongestStreak, snapshot.Settings.LastStudyDate.String()); err != nil {
		return fmt.Errorf("tx.ExecContext(replace settings) > %w", err)
	}
	return nil
}
