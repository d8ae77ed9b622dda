package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/holiday"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// ListByDate implements holiday.HolidayRepository. State holidays match only
// when state is given; national and local entries always match.
func (h *holidayRepository) ListByDate(ctx context.Context, date time.Time, state *string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, name, type, state, optional
		FROM holidays
		WHERE date = $1
		  AND (type <> 'estadual' OR state = $2)
		ORDER BY optional, type
	`
	rows, err := q.Query(ctx, query, date, state)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var out []holiday.Holiday
	for rows.Next() {
		var hd holiday.Holiday
		if err := rows.Scan(&hd.ID, &hd.Date, &hd.Name, &hd.Type, &hd.State, &hd.Optional); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		out = append(out, hd)
	}
	return out, rows.Err()
}
