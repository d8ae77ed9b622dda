// Package timecalc holds the time-clock arithmetic: clock strings, worked
// hours, day types and the shift rules that turn punches into overtime.
package timecalc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidClock = errors.New("invalid time of day, expected HH:MM")

var clockRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClock reports whether s is a 24h "HH:MM" (or "H:MM") time of day.
func IsValidClock(s string) bool {
	return clockRegex.MatchString(s)
}

// NormalizeClock trims seconds from "HH:MM:SS" values and zero-pads the hour.
// Values that still are not a valid clock are returned trimmed but otherwise untouched.
func NormalizeClock(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 8 && s[2] == ':' && s[5] == ':' {
		s = s[:5]
	}
	if !IsValidClock(s) {
		return s
	}
	if len(s) == 4 {
		s = "0" + s
	}
	return s
}

// ToMinutes converts "HH:MM" to minutes since midnight.
func ToMinutes(s string) (int, error) {
	s = NormalizeClock(s)
	if !IsValidClock(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	parts := strings.SplitN(s, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m, nil
}

// MustMinutes is ToMinutes for package-level constants.
func MustMinutes(s string) int {
	m, err := ToMinutes(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromMinutes converts minutes since midnight back to a zero-padded "HH:MM".
func FromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// RoundHours rounds to two decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
