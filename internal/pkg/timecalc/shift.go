package timecalc

import (
	"math"
	"time"
)

// Day is the calendar input to the overtime rule.
type Day struct {
	Type    DayType
	Weekday time.Weekday
}

// NewDay builds a Day for date with an already-resolved day type.
func NewDay(date time.Time, t DayType) Day {
	return Day{Type: t, Weekday: date.Weekday()}
}

// ShiftPolicy describes the standard workday. Minute fields are offsets from midnight.
type ShiftPolicy struct {
	Reference     int
	Proximity     int
	LongHours     float64
	LongEnd       int
	ShortHours    float64
	ShortEnd      int
	BaselineHours float64

	// LegacyExitHeuristic picks the short (Friday) shift whenever the exit
	// stamp is near ShortEnd, regardless of the weekday.
	LegacyExitHeuristic bool
}

// DefaultShiftPolicy is the 07:00 crew schedule: 07:00-17:00 Monday to
// Thursday, 07:00-16:00 on Fridays, 8 hours for anyone off that schedule.
func DefaultShiftPolicy() ShiftPolicy {
	return ShiftPolicy{
		Reference:     MustMinutes("07:00"),
		Proximity:     30,
		LongHours:     10,
		LongEnd:       MustMinutes("17:00"),
		ShortHours:    9,
		ShortEnd:      MustMinutes("16:00"),
		BaselineHours: 8,
	}
}

// Standard returns the expected hours for the day and, when the crew schedule
// applies, the clock time the shift ends.
func (s ShiftPolicy) Standard(entry, exit int, day Day) (hours float64, end int, scheduled bool) {
	if day.Type.IsRestDay() {
		return 0, 0, false
	}
	if abs(entry-s.Reference) > s.Proximity {
		return s.BaselineHours, 0, false
	}

	short := day.Weekday == time.Friday
	if s.LegacyExitHeuristic {
		short = abs(exit-s.ShortEnd) <= s.Proximity
	}
	if short {
		return s.ShortHours, s.ShortEnd, true
	}
	return s.LongHours, s.LongEnd, true
}

// OvertimeHours computes overtime for one day's punches. On rest days and
// holidays the whole worked duration is overtime. On normal days overtime is
// the excess over the standard shift, or the time stamped after the shift's
// end clock if that is larger.
func (s ShiftPolicy) OvertimeHours(p Punches, day Day) float64 {
	if !p.Complete() {
		return 0
	}
	entry, err := ToMinutes(p.Entry)
	if err != nil {
		return 0
	}
	exit, err := ToMinutes(p.Exit)
	if err != nil {
		return 0
	}

	worked := p.WorkedHours()
	if day.Type.IsRestDay() {
		return worked
	}

	standard, end, scheduled := s.Standard(entry, exit, day)
	overtime := math.Max(0, worked-standard)
	if scheduled && exit > end {
		overtime = math.Max(overtime, float64(exit-end)/60)
	}
	return RoundHours(overtime)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
