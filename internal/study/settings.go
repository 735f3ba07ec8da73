package study

// Settings holds learner-level state that is not derivable from the record
// set alone. LongestStreak is a ratchet: it only ever moves forward, so
// replaying or importing older data cannot lower it.
type Settings struct {
	DailyGoal     int  `yaml:"daily_goal" json:"dailyGoal"`
	CurrentStreak int  `yaml:"current_streak" json:"currentStreak"`
	LongestStreak int  `yaml:"longest_streak" json:"longestStreak"`
	LastStudyDate Date `yaml:"last_study_date,omitempty" json:"lastStudyDate,omitempty"`
}

const defaultDailyGoal = 3

// DefaultSettings returns the initial settings for a fresh install.
func DefaultSettings() Settings {
	return Settings{DailyGoal: defaultDailyGoal}
}

// ObserveStreak records a freshly computed current streak and ratchets the
// longest streak forward when the new value exceeds it.
func (s *Settings) ObserveStreak(current int) {
	s.CurrentStreak = current
	if current > s.LongestStreak {
		s.LongestStreak = current
	}
}

// Snapshot is the full persistable state: records, disciplines, and
// settings. The persistence collaborator loads one on startup and saves one
// after every mutating operation.
type Snapshot struct {
	Records     []StudyRecord `yaml:"records" json:"records"`
	Disciplines []Discipline  `yaml:"disciplines" json:"disciplines"`
	Settings    Settings      `yaml:"settings" json:"settings"`
}
