package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fbarbosa/medstudy/internal/study"
)

// Persistence failures are recoverable: the in-memory state is never lost
// because a load or save failed. Callers classify them with errors.Is and
// surface a non-fatal warning.
var (
	ErrLoadFailed = errors.New("loading persisted state failed")
	ErrSaveFailed = errors.New("saving state failed")
)

// Store is the explicit owner of the application state. It assumes
// single-writer, single-reader access per call and offers no internal
// locking; a concurrent host must serialize calls into it.
type Store struct {
	repo   Repository
	logger *slog.Logger

	records     []study.StudyRecord
	disciplines []study.Discipline
	settings    study.Settings
}

// Open loads persisted state into a new Store. When no prior state exists
// the built-in seed dataset is used and saved. When loading fails the Store
// still comes up on the seed dataset; the returned error wraps ErrLoadFailed
// and the Store is fully usable.
//
// The current streak is recomputed and the longest-streak ratchet applied on
// every load.
func Open(ctx context.Context, repo Repository, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{repo: repo, logger: logger}

	snapshot, err := repo.Load(ctx)
	if err != nil {
		s.adopt(SeedSnapshot())
		s.refreshStreak()
		s.logger.Warn("failed to load persisted state, continuing on seed data", "error", err)
		return s, fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}

	if snapshot == nil {
		s.adopt(SeedSnapshot())
		s.refreshStreak()
		return s, s.save(ctx, "seed")
	}

	s.adopt(snapshot)
	s.refreshStreak()
	return s, nil
}

func (s *Store) adopt(snapshot *study.Snapshot) {
	s.records = append([]study.StudyRecord(nil), snapshot.Records...)
	s.disciplines = append([]study.Discipline(nil), snapshot.Disciplines...)
	s.settings = mergeSettings(study.DefaultSettings(), snapshot.Settings)
}

func mergeSettings(base, incoming study.Settings) study.Settings {
	merged := incoming
	if merged.DailyGoal <= 0 {
		merged.DailyGoal = base.DailyGoal
	}
	return merged
}

func (s *Store) refreshStreak() {
	current := study.ComputeStreak(study.StudyDates(s.records), study.Today())
	s.settings.ObserveStreak(current)
}

// save attempts to persist the current snapshot. On failure the state stays
// in memory and the returned error wraps ErrSaveFailed.
func (s *Store) save(ctx context.Context, op string) error {
	if err := s.repo.Save(ctx, s.Snapshot()); err != nil {
		s.logger.Warn("state not persisted, continuing in memory", "op", op, "error", err)
		return fmt.Errorf("%w: %s", ErrSaveFailed, err)
	}
	return nil
}

// Snapshot returns a copy of the full current state.
func (s *Store) Snapshot() *study.Snapshot {
	return &study.Snapshot{
		Records:     append([]study.StudyRecord(nil), s.records...),
		Disciplines: append([]study.Discipline(nil), s.disciplines...),
		Settings:    s.settings,
	}
}

// Records returns a copy of the current record set.
func (s *Store) Records() []study.StudyRecord {
	return append([]study.StudyRecord(nil), s.records...)
}

// Disciplines returns a copy of the current disciplines.
func (s *Store) Disciplines() []study.Discipline {
	return append([]study.Discipline(nil), s.disciplines...)
}

// Settings returns the current settings.
func (s *Store) Settings() study.Settings {
	return s.settings
}

// AddRecord validates and appends a new study record, refreshes the streak,
// and persists. The record is returned with its assigned id.
func (s *Store) AddRecord(ctx context.Context, in study.NewStudyRecordInput) (study.StudyRecord, error) {
	record, err := study.NewStudyRecord(in)
	if err != nil {
		return study.StudyRecord{}, err
	}

	// Millisecond ids can collide when records are created back to back.
	for s.hasRecordID(record.ID) {
		record.ID++
	}

	s.records = append(s.records, *record)
	if s.settings.LastStudyDate.IsZero() || record.StudyDate.After(s.settings.LastStudyDate) {
		s.settings.LastStudyDate = record.StudyDate
	}
	s.refreshStreak()
	return *record, s.save(ctx, "add record")
}

func (s *Store) hasRecordID(id int64) bool {
	for _, r := range s.records {
		if r.ID == id {
			return true
		}
	}
	return false
}

// CompleteReview marks a record's review as done and reschedules it from
// the record's stored performance score. The prior interval always restarts
// from the default, so repeated completions do not compound intervals.
func (s *Store) CompleteReview(ctx context.Context, id int64) (study.StudyRecord, error) {
	for i := range s.records {
		if s.records[i].ID != id {
			continue
		}
		plan := study.ScheduleNextReview(s.records[i].PerformanceScore, study.DefaultIntervalDays)
		s.records[i].NextReview = plan.NextReview
		return s.records[i], s.save(ctx, "complete review")
	}
	return study.StudyRecord{}, fmt.Errorf("%w: study record %d", study.ErrNotFound, id)
}

// Query runs the history query engine against the current state.
func (s *Store) Query(criteria study.Criteria) study.QueryResult {
	return study.Query(s.records, s.disciplines, criteria)
}

// AddDiscipline creates a custom discipline. The name must be unique
// case-insensitively and at least one topic is required.
func (s *Store) AddDiscipline(ctx context.Context, name string, topics []string) (study.Discipline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return study.Discipline{}, fmt.Errorf("%w: discipline name is required", study.ErrInvalidInput)
	}
	if len(topics) == 0 {
		return study.Discipline{}, fmt.Errorf("%w: at least one topic is required", study.ErrInvalidInput)
	}
	if study.NameExists(s.disciplines, name) {
		return study.Discipline{}, fmt.Errorf("%w: %q", study.ErrDuplicateName, name)
	}

	discipline := study.Discipline{
		ID:       study.NextDisciplineID(s.disciplines),
		Name:     name,
		Topics:   topics,
		IsCustom: true,
	}
	s.disciplines = append(s.disciplines, discipline)
	return discipline, s.save(ctx, "add discipline")
}

// RemoveDiscipline deletes a custom discipline. Built-in disciplines and
// disciplines referenced by any study record are protected.
func (s *Store) RemoveDiscipline(ctx context.Context, id int) error {
	idx := -1
	for i, d := range s.disciplines {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: discipline %d", study.ErrNotFound, id)
	}
	if !s.disciplines[idx].IsCustom {
		return fmt.Errorf("%w: discipline %d", study.ErrBuiltinDiscipline, id)
	}
	if s.IsDisciplineReferenced(id) {
		return fmt.Errorf("%w: discipline %d", study.ErrDisciplineInUse, id)
	}

	s.disciplines = append(s.disciplines[:idx], s.disciplines[idx+1:]...)
	return s.save(ctx, "remove discipline")
}

// IsDisciplineReferenced reports whether any study record references the
// discipline.
func (s *Store) IsDisciplineReferenced(id int) bool {
	for _, r := range s.records {
		if r.DisciplineID == id {
			return true
		}
	}
	return false
}

// SetDailyGoal updates the daily study goal.
func (s *Store) SetDailyGoal(ctx context.Context, goal int) error {
	if goal < 1 {
		return fmt.Errorf("%w: daily goal must be at least 1", study.ErrInvalidInput)
	}
	s.settings.DailyGoal = goal
	return s.save(ctx, "set daily goal")
}

// Clear wipes all records and custom disciplines, restoring the built-in
// disciplines and default settings.
func (s *Store) Clear(ctx context.Context) error {
	s.records = nil
	s.disciplines = SeedDisciplines()
	s.settings = study.DefaultSettings()
	s.refreshStreak()
	return s.save(ctx, "clear")
}
