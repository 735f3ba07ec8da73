package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_store "github.com/fbarbosa/medstudy/internal/mocks/store"
	"github.com/fbarbosa/medstudy/internal/store"
	"github.com/fbarbosa/medstudy/internal/study"
	"github.com/fbarbosa/medstudy/internal/testutil"
)

func newStore(t *testing.T, snapshot *study.Snapshot) (*store.Store, *mock_store.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_store.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(snapshot, nil)

	s, err := store.Open(context.Background(), repo, nil)
	require.NoError(t, err)
	return s, repo
}

func TestOpen_SeedsWhenEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_store.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(nil, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	s, err := store.Open(context.Background(), repo, nil)
	require.NoError(t, err)

	assert.Len(t, s.Disciplines(), 5)
	assert.Len(t, s.Records(), 3)
	assert.Equal(t, 3, s.Settings().DailyGoal)
	for _, d := range s.Disciplines() {
		assert.False(t, d.IsCustom)
		assert.Len(t, d.Topics, 5)
	}
}

func TestOpen_LoadFailureFallsBackToSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_store.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(nil, errors.New("disk on fire"))

	s, err := store.Open(context.Background(), repo, nil)

	// The store is usable despite the load failure.
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrLoadFailed)
	require.NotNil(t, s)
	assert.Len(t, s.Disciplines(), 5)
}

func TestOpen_RatchetsStreakOnLoad(t *testing.T) {
	today := study.Today()
	snapshot := &study.Snapshot{
		Records: []study.StudyRecord{
			testutil.Record(1, 1, today),
			testutil.Record(2, 1, today.AddDays(-1)),
		},
		Disciplines: testutil.Disciplines(),
		Settings:    study.Settings{DailyGoal: 3, LongestStreak: 1},
	}

	s, _ := newStore(t, snapshot)

	assert.Equal(t, 2, s.Settings().CurrentStreak)
	assert.Equal(t, 2, s.Settings().LongestStreak)
}

func TestStore_AddRecord(t *testing.T) {
	snapshot := &study.Snapshot{
		Disciplines: testutil.Disciplines(),
		Settings:    study.DefaultSettings(),
	}
	s, repo := newStore(t, snapshot)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	record, err := s.AddRecord(context.Background(), study.NewStudyRecordInput{
		DisciplineID:   1,
		Topic:          "Arrhythmias",
		CorrectAnswers: 18,
		TotalQuestions: 20,
		StudyDate:      study.Today(),
		StudySeconds:   1800,
	})
	require.NoError(t, err)

	assert.Equal(t, 90, record.PerformanceScore)
	assert.Len(t, s.Records(), 1)
	assert.Equal(t, 1, s.Settings().CurrentStreak)
	assert.True(t, s.Settings().LastStudyDate.Equal(study.Today()))
}

func TestStore_AddRecord_InvalidInputDoesNotMutate(t *testing.T) {
	snapshot := &study.Snapshot{
		Disciplines: testutil.Disciplines(),
		Settings:    study.DefaultSettings(),
	}
	s, _ := newStore(t, snapshot)

	_, err := s.AddRecord(context.Background(), study.NewStudyRecordInput{
		DisciplineID:   1,
		Topic:          "Arrhythmias",
		CorrectAnswers: 21,
		TotalQuestions: 20,
		StudyDate:      study.Today(),
	})

	// Rejected before any state mutation; no save is attempted.
	require.Error(t, err)
	assert.ErrorIs(t, err, study.ErrInvalidInput)
	assert.Empty(t, s.Records())
}

func TestStore_AddRecord_SaveFailureKeepsRecord(t *testing.T) {
	snapshot := &study.Snapshot{
		Disciplines: testutil.Disciplines(),
		Settings:    study.DefaultSettings(),
	}
	s, repo := newStore(t, snapshot)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := s.AddRecord(context.Background(), study.NewStudyRecordInput{
		DisciplineID:   1,
		Topic:          "Asthma",
		CorrectAnswers: 15,
		TotalQuestions: 20,
		StudyDate:      study.Today(),
	})

	// The save failure is a recoverable warning; in-memory state is kept.
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrSaveFailed)
	assert.Len(t, s.Records(), 1)
}

func TestStore_CompleteReview(t *testing.T) {
	today := study.Today()

	tests := []struct {
		name             string
		performanceScore int
		wantNextReview   study.Date
	}{
		{
			name:             "high score schedules far out",
			performanceScore: 90,
			wantNextReview:   today.AddDays(3), // round(1 * 2.5)
		},
		{
			name:             "passing score schedules tomorrow",
			performanceScore: 70,
			wantNextReview:   today.AddDays(1),
		},
		{
			name:             "failing score schedules tomorrow",
			performanceScore: 40,
			wantNextReview:   today.AddDays(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &study.Snapshot{
				Records: []study.StudyRecord{
					testutil.Record(10, 1, today.AddDays(-5),
						testutil.WithScore(tt.performanceScore),
						testutil.WithNextReview(today.AddDays(-4))),
				},
				Disciplines: testutil.Disciplines(),
				Settings:    study.DefaultSettings(),
			}
			s, repo := newStore(t, snapshot)
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

			got, err := s.CompleteReview(context.Background(), 10)
			require.NoError(t, err)

			assert.True(t, got.NextReview.Equal(tt.wantNextReview),
				"next review = %s, want %s", got.NextReview, tt.wantNextReview)
			// The stored record is updated too.
			assert.True(t, s.Records()[0].NextReview.Equal(tt.wantNextReview))
		})
	}
}

func TestStore_CompleteReview_NotFound(t *testing.T) {
	snapshot := &study.Snapshot{
		Disciplines: testutil.Disciplines(),
		Settings:    study.DefaultSettings(),
	}
	s, _ := newStore(t, snapshot)

	_, err := s.CompleteReview(context.Background(), 404)

	require.Error(t, err)
	assert.ErrorIs(t, err, study.ErrNotFound)
}

func TestStore_AddDiscipline(t *testing.T) {
	snapshot := &study.Snapshot{
		Disciplines: testutil.Disciplines(),
		Settings:    study.DefaultSettings(),
	}

	tests := []struct {
		name      string
		discName  string
		topics    []string
		wantErrIs error
	}{
		{
			name:     "valid custom discipline",
			discName: "Nephrology",
			topics:   []string{"Acute Kidney Injury", "Glomerulonephritis"},
		},
		{
			name:      "duplicate name is rejected",
			discName:  "Cardiology",
			topics:    []string{"Anything"},
			wantErrIs: study.ErrDuplicateName,
		},
		{
			name:      "duplicate name differing only in case is rejected",
			discName:  "cardiology",
			topics:    []string{"Anything"},
			wantErrIs: study.ErrDuplicateName,
		},
		{
			name:      "empty name is rejected",
			discName:  "  ",
			topics:    []string{"Anything"},
			wantErrIs: study.ErrInvalidInput,
		},
		{
			name:      "no topics is rejected",
			discName:  "Nephrology",
			topics:    nil,
			wantErrIs: study.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newStore(t, snapshot)
			if tt.wantErrIs == nil {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			}

			got, err := s.AddDiscipline(context.Background(), tt.discName, tt.topics)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Len(t, s.Disciplines(), 2)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, 3, got.ID) // one past the current maximum
			assert.True(t, got.IsCustom)
			assert.Len(t, s.Disciplines(), 3)
		})
	}
}

func TestStore_RemoveDiscipline(t *testing.T) {
	today := study.Today()

	tests := []struct {
		name      string
		id        int
		withUsage bool
		wantErrIs error
	}{
		{
			name: "unreferenced custom discipline is removed",
			id:   2,
		},
		{
			name:      "referenced discipline is protected",
			id:        2,
			withUsage: true,
			wantErrIs: study.ErrDisciplineInUse,
		},
		{
			name:      "built-in discipline is protected",
			id:        1,
			wantErrIs: study.ErrBuiltinDiscipline,
		},
		{
			name:      "unknown discipline",
			id:        42,
			wantErrIs: study.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &study.Snapshot{
				Disciplines: testutil.Disciplines(),
				Settings:    study.DefaultSettings(),
			}
			if tt.withUsage {
				snapshot.Records = []study.StudyRecord{testutil.Record(1, tt.id, today)}
			}
			s, repo := newStore(t, snapshot)
			if tt.wantErrIs == nil {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := s.RemoveDiscipline(context.Background(), tt.id)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Len(t, s.Disciplines(), 2)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.Disciplines(), 1)
		})
	}
}

func TestStore_IsDisciplineReferenced(t *testing.T) {
	snapshot := &study.Snapshot{
		Records:     []study.StudyRecord{testutil.Record(1, 1, study.Today())},
		Disciplines: testutil.Disciplines(),
		Settings:    study.DefaultSettings(),
	}
	s, _ := newStore(t, snapshot)

	assert.True(t, s.IsDisciplineReferenced(1))
	assert.False(t, s.IsDisciplineReferenced(2))
}

func TestStore_SetDailyGoal(t *testing.T) {
	snapshot := &study.Snapshot{
		Disciplines: testutil.Disciplines(),
		Settings:    study.DefaultSettings(),
	}
	s, repo := newStore(t, snapshot)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, s.SetDailyGoal(context.Background(), 5))
	assert.Equal(t, 5, s.Settings().DailyGoal)

	err := s.SetDailyGoal(context.Background(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, study.ErrInvalidInput)
	assert.Equal(t, 5, s.Settings().DailyGoal)
}

func TestStore_Clear(t *testing.T) {
	snapshot := &study.Snapshot{
		Records:     []study.StudyRecord{testutil.Record(1, 1, study.Today())},
		Disciplines: append(testutil.Disciplines(), study.Discipline{ID: 9, Name: "Scratch", IsCustom: true}),
		Settings:    study.Settings{DailyGoal: 7, LongestStreak: 12},
	}
	s, repo := newStore(t, snapshot)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, s.Clear(context.Background()))

	assert.Empty(t, s.Records())
	assert.Len(t, s.Disciplines(), 5)
	assert.Equal(t, 3, s.Settings().DailyGoal)
	assert.Equal(t, 0, s.Settings().CurrentStreak)
}

func TestStore_Query(t *testing.T) {
	today := study.Today()
	snapshot := &study.Snapshot{
		Records: []study.StudyRecord{
			testutil.Record(1, 1, today.AddDays(-1), testutil.WithScore(70)),
			testutil.Record(2, 1, today, testutil.WithScore(90)),
			testutil.Record(3, 2, today, testutil.WithScore(65)),
		},
		Disciplines: testutil.Disciplines(),
		Settings:    study.DefaultSettings(),
	}
	s, _ := newStore(t, snapshot)

	all := s.Query(study.Criteria{})
	require.Equal(t, 3, all.TotalCount)
	assert.Equal(t, int64(2), all.Matches[0].ID)

	banded := s.Query(study.Criteria{
		DisciplineID: 1,
		Band:         &study.PerformanceBand{Min: 60, Max: 79},
	})
	require.Equal(t, 1, banded.TotalCount)
	assert.Equal(t, int64(1), banded.Matches[0].ID)
}
