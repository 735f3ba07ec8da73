package study

import "strings"

// Discipline is a named subject area owning an ordered list of topic labels.
// Topic order is meaningful for display only. IsCustom distinguishes
// user-added disciplines from the built-in seed data.
type Discipline struct {
	ID       int      `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Topics   []string `yaml:"topics" json:"topics"`
	IsCustom bool     `yaml:"is_custom" json:"isCustom"`
}

// FindDiscipline looks up a discipline by id. A missing match is a valid
// "not found" outcome, not an error; record discipline references are loose.
func FindDiscipline(disciplines []Discipline, id int) (Discipline, bool) {
	for _, d := range disciplines {
		if d.ID == id {
			return d, true
		}
	}
	return Discipline{}, false
}

// DisciplineName resolves a discipline reference to its name, or the empty
// string when the reference matches nothing.
func DisciplineName(disciplines []Discipline, id int) string {
	if d, ok := FindDiscipline(disciplines, id); ok {
		return d.Name
	}
	return ""
}

// NameExists reports whether a discipline with the given name already
// exists. Name uniqueness is case-insensitive.
func NameExists(disciplines []Discipline, name string) bool {
	for _, d := range disciplines {
		if strings.EqualFold(d.Name, name) {
			return true
		}
	}
	return false
}

// NextDisciplineID returns the next discipline id: one past the current
// maximum, starting at 1.
func NextDisciplineID(disciplines []Discipline) int {
	next := 1
	for _, d := range disciplines {
		if d.ID >= next {
			next = d.ID + 1
		}
	}
	return next
}

// ParseTopics splits a comma-separated topic list, trimming whitespace and
// dropping empty entries.
func ParseTopics(raw string) []string {
	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			topics = append(topics, trimmed)
		}
	}
	return topics
}
