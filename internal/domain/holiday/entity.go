package holiday

import (
	"context"
	"time"
)

// Holiday is an entry of the holiday calendar. Optional (facultativo) days are
// not official holidays and are worked as normal days.
type Holiday struct {
	ID       string
	Date     time.Time
	Name     string
	Type     string // nacional, estadual, local
	State    *string
	Optional bool
}

type HolidayRepository interface {
	// ListByDate returns holidays on date that apply nationwide or to state.
	ListByDate(ctx context.Context, date time.Time, state *string) ([]Holiday, error)
}
