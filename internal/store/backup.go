package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fbarbosa/medstudy/internal/study"
)

// BackupVersion identifies the snapshot wire format.
const BackupVersion = "2.0"

// Backup is a self-describing export of the full state plus metadata.
type Backup struct {
	study.Snapshot
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}

// Export produces a backup of the current state stamped with the export
// time.
func (s *Store) Export(now time.Time) Backup {
	return Backup{
		Snapshot:   *s.Snapshot(),
		ExportDate: now,
		Version:    BackupVersion,
	}
}

// ExportJSON serializes an export for file download or clipboard transfer.
func (s *Store) ExportJSON(now time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(s.Export(now), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent(backup) > %w", err)
	}
	return data, nil
}

// importPayload distinguishes missing sections from empty ones: a snapshot
// without records or disciplines keys is rejected, empty lists are fine.
type importPayload struct {
	Records     *[]study.StudyRecord `json:"records"`
	Disciplines *[]study.Discipline  `json:"disciplines"`
	Settings    *study.Settings      `json:"settings"`
}

// Import replaces the full state with the given snapshot. The snapshot is
// validated before anything is applied, so a malformed import leaves prior
// state untouched. After the replace the streak is recalculated; the
// longest-streak ratchet guarantees an import can never lower it.
func (s *Store) Import(ctx context.Context, data []byte) error {
	var payload importPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %s", study.ErrInvalidSnapshot, err)
	}
	if payload.Records == nil || payload.Disciplines == nil {
		return fmt.Errorf("%w: records and disciplines are required", study.ErrInvalidSnapshot)
	}

	previousLongest := s.settings.LongestStreak

	s.records = append([]study.StudyRecord(nil), (*payload.Records)...)
	s.disciplines = append([]study.Discipline(nil), (*payload.Disciplines)...)
	if payload.Settings != nil {
		s.settings = mergeSettings(s.settings, *payload.Settings)
	}
	if previousLongest > s.settings.LongestStreak {
		s.settings.LongestStreak = previousLongest
	}
	s.refreshStreak()

	return s.save(ctx, "import")
}
