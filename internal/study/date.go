package study

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Date represents a calendar date in YYYY-MM-DD form. All scheduling and
// streak logic operates at day granularity; there is no sub-day precision
// anywhere in the core.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewDateFromTime truncates a timestamp to its calendar day in the
// timestamp's own location.
func NewDateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date on the local wall clock.
func Today() Date {
	return NewDateFromTime(time.Now())
}

// ParseDate parses a YYYY-MM-DD string. On malformed input it returns the
// zero Date along with the error; the zero Date fails every predicate, so a
// caller that ignores the error still gets safe behavior.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("unable to parse date %q: expected YYYY-MM-DD format", value)
	}
	return Date{Time: t}, nil
}

// IsToday reports whether the date equals today's local calendar date.
// A zero Date is never today.
func (d Date) IsToday() bool {
	return !d.IsZero() && d.Equal(Today())
}

// IsOverdue reports whether the date is strictly before today. A zero Date
// is never overdue.
func (d Date) IsOverdue() bool {
	return !d.IsZero() && d.Before(Today())
}

// AddDays returns the date shifted by n calendar days. Month and year
// boundaries are handled by the calendar, not by duration arithmetic.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// DaysUntil returns the number of calendar days from d to other. Negative
// when other is earlier than d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalYAML implements the yaml.Marshaler interface.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("json.Unmarshal(date) > %w", err)
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
