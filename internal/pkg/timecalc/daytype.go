package timecalc

import (
	"fmt"
	"strings"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/pkg/textnorm"
)

type DayType string

const (
	DayNormal          DayType = "normal"
	DaySaturday        DayType = "sabado"
	DaySunday          DayType = "domingo"
	DayNationalHoliday DayType = "feriado_nacional"
	DayStateHoliday    DayType = "feriado_estadual"
	DayLocalHoliday    DayType = "feriado_local"
)

var AllDayTypes = []DayType{
	DayNormal, DaySaturday, DaySunday,
	DayNationalHoliday, DayStateHoliday, DayLocalHoliday,
}

var dayTypeAliases = map[string]DayType{
	"saturday":         DaySaturday,
	"sunday":           DaySunday,
	"national_holiday": DayNationalHoliday,
	"state_holiday":    DayStateHoliday,
	"local_holiday":    DayLocalHoliday,
}

func (d DayType) IsValid() bool {
	for _, t := range AllDayTypes {
		if d == t {
			return true
		}
	}
	return false
}

func (d DayType) IsHoliday() bool {
	return strings.HasPrefix(string(d), "feriado")
}

// IsRestDay reports whether every worked hour on this day is overtime.
func (d DayType) IsRestDay() bool {
	return d != DayNormal
}

// Premium is the pay surcharge applied to overtime worked on this day type:
// 60% on Saturdays, 100% on Sundays and holidays.
func (d DayType) Premium() float64 {
	switch {
	case d == DaySaturday:
		return 0.6
	case d == DaySunday, d.IsHoliday():
		return 1.0
	default:
		return 0
	}
}

// ParseDayType accepts the stored values plus accented, spaced or English spellings.
func ParseDayType(s string) (DayType, error) {
	key := strings.ReplaceAll(textnorm.Fold(s), " ", "_")
	if d := DayType(key); d.IsValid() {
		return d, nil
	}
	if d, ok := dayTypeAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("invalid day type %q", s)
}

// DayTypeForWeekday classifies a calendar date without holiday information.
func DayTypeForWeekday(date time.Time) DayType {
	switch date.Weekday() {
	case time.Saturday:
		return DaySaturday
	case time.Sunday:
		return DaySunday
	default:
		return DayNormal
	}
}

// HolidayDayType maps a holiday calendar kind (nacional, estadual, local) to its day type.
func HolidayDayType(kind string) (DayType, bool) {
	switch textnorm.Fold(kind) {
	case "nacional":
		return DayNationalHoliday, true
	case "estadual":
		return DayStateHoliday, true
	case "local", "municipal":
		return DayLocalHoliday, true
	}
	return "", false
}
