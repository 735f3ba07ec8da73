package study

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Date
		wantErr bool
	}{
		{
			name:  "valid date",
			value: "2025-03-14",
			want:  NewDate(2025, time.March, 14),
		},
		{
			name:    "malformed date",
			value:   "14/03/2025",
			wantErr: true,
		},
		{
			name:    "empty string",
			value:   "",
			wantErr: true,
		},
		{
			name:    "timestamp is rejected",
			value:   "2025-03-14T10:00:00Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, got.IsZero())
				// Predicates fail closed on the zero value.
				assert.False(t, got.IsToday())
				assert.False(t, got.IsOverdue())
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestDate_Predicates(t *testing.T) {
	today := Today()

	assert.True(t, today.IsToday())
	assert.False(t, today.IsOverdue())

	yesterday := today.AddDays(-1)
	assert.False(t, yesterday.IsToday())
	assert.True(t, yesterday.IsOverdue())

	tomorrow := today.AddDays(1)
	assert.False(t, tomorrow.IsToday())
	assert.False(t, tomorrow.IsOverdue())
}

func TestDate_AddDays(t *testing.T) {
	tests := []struct {
		name string
		date Date
		days int
		want Date
	}{
		{
			name: "within month",
			date: NewDate(2025, time.March, 10),
			days: 5,
			want: NewDate(2025, time.March, 15),
		},
		{
			name: "across month boundary",
			date: NewDate(2025, time.January, 30),
			days: 3,
			want: NewDate(2025, time.February, 2),
		},
		{
			name: "across year boundary backward",
			date: NewDate(2025, time.January, 1),
			days: -1,
			want: NewDate(2024, time.December, 31),
		},
		{
			name: "leap day",
			date: NewDate(2024, time.February, 28),
			days: 1,
			want: NewDate(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.date.AddDays(tt.days).Equal(tt.want))
		})
	}
}

func TestDate_DaysUntil(t *testing.T) {
	a := NewDate(2025, time.March, 10)
	b := NewDate(2025, time.March, 12)

	assert.Equal(t, 2, a.DaysUntil(b))
	assert.Equal(t, -2, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
}

func TestDate_YAMLRoundTrip(t *testing.T) {
	type doc struct {
		Reviewed Date `yaml:"reviewed"`
	}

	data, err := yaml.Marshal(doc{Reviewed: NewDate(2025, time.June, 1)})
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-06-01")

	var got doc
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.True(t, got.Reviewed.Equal(NewDate(2025, time.June, 1)))

	var zero doc
	require.NoError(t, yaml.Unmarshal([]byte(`reviewed: ""`), &zero))
	assert.True(t, zero.Reviewed.IsZero())

	assert.Error(t, yaml.Unmarshal([]byte("reviewed: not-a-date"), &got))
}

func TestDate_JSONRoundTrip(t *testing.T) {
	type doc struct {
		Reviewed Date `json:"reviewed"`
	}

	data, err := json.Marshal(doc{Reviewed: NewDate(2025, time.June, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reviewed":"2025-06-01"}`, string(data))

	var got doc
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Reviewed.Equal(NewDate(2025, time.June, 1)))

	assert.Error(t, json.Unmarshal([]byte(`{"reviewed":"06/01/2025"}`), &got))
}
