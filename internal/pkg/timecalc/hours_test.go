package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkedHours(t *testing.T) {
	tests := []struct {
		name                          string
		entry, exit, lunchOut, lunchIn string
		want                          float64
	}{
		{"full day with lunch", "08:00", "17:00", "12:00", "13:00", 8},
		{"no lunch", "07:00", "17:00", "", "", 10},
		{"rounded to two places", "07:10", "16:00", "", "", 8.83},
		{"half lunch ignored", "08:00", "17:00", "12:00", "", 9},
		{"only lunch in ignored", "08:00", "17:00", "", "13:00", 9},
		{"missing exit", "08:00", "", "12:00", "13:00", 0},
		{"missing entry", "", "17:00", "", "", 0},
		{"inverted stamps floor at zero", "17:00", "08:00", "", "", 0},
		{"malformed entry", "25:00", "17:00", "", "", 0},
		{"malformed lunch ignored", "08:00", "12:00", "xx", "10:00", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkedHours(tt.entry, tt.exit, tt.lunchOut, tt.lunchIn)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestWorkedHoursNeverNegative(t *testing.T) {
	for entry := 0; entry < 24*60; entry += 37 {
		for exit := 0; exit < 24*60; exit += 41 {
			got := WorkedHours(FromMinutes(entry), FromMinutes(exit), "", "")
			assert.GreaterOrEqual(t, got, 0.0)
			if exit >= entry {
				assert.InDelta(t, RoundHours(float64(exit-entry)/60), got, 0.0001)
			}
		}
	}
}

func TestOvertimeHours(t *testing.T) {
	policy := DefaultShiftPolicy()

	tests := []struct {
		name    string
		punches Punches
		day     Day
		want    float64
	}{
		{
			name:    "long shift ends on time",
			punches: Punches{Entry: "07:00", Exit: "17:00"},
			day:     Day{Type: DayNormal, Weekday: time.Thursday},
			want:    0,
		},
		{
			name:    "friday short shift",
			punches: Punches{Entry: "07:10", Exit: "16:00"},
			day:     Day{Type: DayNormal, Weekday: time.Friday},
			want:    0,
		},
		{
			name:    "friday stayed late",
			punches: Punches{Entry: "07:00", Exit: "17:30"},
			day:     Day{Type: DayNormal, Weekday: time.Friday},
			want:    1.5,
		},
		{
			name:    "clock overage beats duration overage",
			punches: Punches{Entry: "07:00", LunchOut: "12:00", LunchIn: "13:00", Exit: "18:00"},
			day:     Day{Type: DayNormal, Weekday: time.Thursday},
			want:    1,
		},
		{
			name:    "off schedule uses eight hour baseline",
			punches: Punches{Entry: "09:00", Exit: "18:30"},
			day:     Day{Type: DayNormal, Weekday: time.Tuesday},
			want:    1.5,
		},
		{
			name:    "saturday counts everything",
			punches: Punches{Entry: "07:00", Exit: "19:00"},
			day:     Day{Type: DaySaturday, Weekday: time.Saturday},
			want:    12,
		},
		{
			name:    "holiday counts everything minus lunch",
			punches: Punches{Entry: "07:00", LunchOut: "12:00", LunchIn: "13:00", Exit: "16:00"},
			day:     Day{Type: DayNationalHoliday, Weekday: time.Wednesday},
			want:    8,
		},
		{
			name:    "open session",
			punches: Punches{Entry: "07:00"},
			day:     Day{Type: DaySunday, Weekday: time.Sunday},
			want:    0,
		},
		{
			name:    "malformed exit",
			punches: Punches{Entry: "07:00", Exit: "7pm"},
			day:     Day{Type: DayNormal, Weekday: time.Monday},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, policy.OvertimeHours(tt.punches, tt.day), 0.001)
		})
	}
}

func TestOvertimeHoursLegacyExitHeuristic(t *testing.T) {
	punches := Punches{Entry: "07:00", Exit: "16:20"}
	monday := Day{Type: DayNormal, Weekday: time.Monday}

	calendar := DefaultShiftPolicy()
	assert.InDelta(t, 0, calendar.OvertimeHours(punches, monday), 0.001)

	legacy := DefaultShiftPolicy()
	legacy.LegacyExitHeuristic = true
	assert.InDelta(t, 0.33, legacy.OvertimeHours(punches, monday), 0.001)
}

func TestStandard(t *testing.T) {
	policy := DefaultShiftPolicy()

	hours, end, scheduled := policy.Standard(MustMinutes("06:45"), MustMinutes("17:00"), Day{Type: DayNormal, Weekday: time.Monday})
	assert.Equal(t, 10.0, hours)
	assert.Equal(t, MustMinutes("17:00"), end)
	assert.True(t, scheduled)

	hours, _, scheduled = policy.Standard(MustMinutes("07:31"), MustMinutes("17:00"), Day{Type: DayNormal, Weekday: time.Monday})
	assert.Equal(t, 8.0, hours)
	assert.False(t, scheduled)
}
