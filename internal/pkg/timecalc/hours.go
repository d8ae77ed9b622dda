package timecalc

import "math"

// Punches are the four clock stamps of one day. Empty strings mean "not stamped".
type Punches struct {
	Entry    string
	LunchOut string
	LunchIn  string
	Exit     string
}

// WorkedHours is exit minus entry, less the lunch break when both lunch stamps
// are present. Missing or malformed entry/exit yields 0; the result never goes negative.
func WorkedHours(entry, exit, lunchOut, lunchIn string) float64 {
	if entry == "" || exit == "" {
		return 0
	}
	in, err := ToMinutes(entry)
	if err != nil {
		return 0
	}
	out, err := ToMinutes(exit)
	if err != nil {
		return 0
	}

	total := out - in
	if lunchOut != "" && lunchIn != "" {
		lo, errOut := ToMinutes(lunchOut)
		li, errIn := ToMinutes(lunchIn)
		if errOut == nil && errIn == nil {
			total -= li - lo
		}
	}

	return math.Max(0, RoundHours(float64(total)/60))
}

// WorkedHours applies the package-level WorkedHours to p.
func (p Punches) WorkedHours() float64 {
	return WorkedHours(p.Entry, p.Exit, p.LunchOut, p.LunchIn)
}

// Complete reports whether both entry and exit are stamped.
func (p Punches) Complete() bool {
	return p.Entry != "" && p.Exit != ""
}
