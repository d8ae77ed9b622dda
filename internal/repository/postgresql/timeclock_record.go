package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/database"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
	"github.com/jackc/pgx/v5"
)

const recordColumns = `
	r.id, r.employee_id, r.date, r.entry_time, r.lunch_out_time, r.lunch_in_time, r.exit_time,
	r.worked_hours, r.overtime_hours, r.status, r.notes, r.location, r.latitude, r.longitude,
	r.day_type, r.is_holiday, r.approved_by, r.approved_at, r.signature_path, r.signature_digest,
	r.continuous_work, r.continuous_work_confirmed, r.continuous_work_confirmed_by, r.continuous_work_confirmed_at,
	r.version, r.created_at, r.updated_at,
	e.name, e.role, e.shift, e.work_site_id`

const recordFrom = `
	FROM timeclock_records r
	LEFT JOIN employees e ON e.id = r.employee_id`

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) timeclock.RecordRepository {
	return &recordRepository{db: db}
}

func scanRecord(row pgx.Row) (timeclock.Record, error) {
	var r timeclock.Record
	var status, dayType string
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.Entry, &r.LunchOut, &r.LunchIn, &r.Exit,
		&r.WorkedHours, &r.OvertimeHours, &status, &r.Notes, &r.Location, &r.Latitude, &r.Longitude,
		&dayType, &r.IsHoliday, &r.ApprovedBy, &r.ApprovedAt, &r.SignaturePath, &r.SignatureDigest,
		&r.ContinuousWork, &r.ContinuousWorkConfirmed, &r.ContinuousWorkConfirmedBy, &r.ContinuousWorkConfirmedAt,
		&r.Version, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeRole, &r.EmployeeShift, &r.WorkSiteID,
	)
	if err != nil {
		return timeclock.Record{}, err
	}
	r.Status = timeclock.Status(status)
	r.DayType = timecalc.DayType(dayType)
	return r, nil
}

func collectRecords(rows pgx.Rows) ([]timeclock.Record, error) {
	defer rows.Close()
	var out []timeclock.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time records: %w", err)
	}
	return out, nil
}

// Insert implements timeclock.RecordRepository. The unique (employee_id, date)
// constraint decides between concurrent first stamps of the day.
func (r *recordRepository) Insert(ctx context.Context, rec timeclock.Record) (timeclock.Record, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timeclock_records (
			id, employee_id, date, entry_time, lunch_out_time, lunch_in_time, exit_time,
			worked_hours, overtime_hours, status, notes, location, latitude, longitude,
			day_type, is_holiday, version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 1, $17, $18
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.Date, rec.Entry, rec.LunchOut, rec.LunchIn, rec.Exit,
		rec.WorkedHours, rec.OvertimeHours, string(rec.Status), rec.Notes, rec.Location, rec.Latitude, rec.Longitude,
		string(rec.DayType), rec.IsHoliday, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&id)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		existing, err := r.GetByEmployeeAndDate(ctx, rec.EmployeeID, rec.Date)
		if err != nil {
			return timeclock.Record{}, false, err
		}
		if existing == nil {
			return timeclock.Record{}, false, fmt.Errorf("time record for %s on %s vanished after conflict", rec.EmployeeID, rec.Date.Format("2006-01-02"))
		}
		return *existing, false, nil
	case err != nil:
		return timeclock.Record{}, false, fmt.Errorf("failed to insert time record: %w", err)
	}

	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return timeclock.Record{}, false, fmt.Errorf("failed to reload time record: %w", err)
	}
	return stored, true, nil
}

// GetByID implements timeclock.RecordRepository.
func (r *recordRepository) GetByID(ctx context.Context, id string) (timeclock.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + recordColumns + recordFrom + ` WHERE r.id = $1`
	return scanRecord(q.QueryRow(ctx, query, id))
}

// GetByEmployeeAndDate implements timeclock.RecordRepository.
func (r *recordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timeclock.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + recordColumns + recordFrom + ` WHERE r.employee_id = $1 AND r.date = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time record by employee and date: %w", err)
	}
	return &rec, nil
}

// Update implements timeclock.RecordRepository.
func (r *recordRepository) Update(ctx context.Context, rec timeclock.Record) (timeclock.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timeclock_records SET
			entry_time = $1, lunch_out_time = $2, lunch_in_time = $3, exit_time = $4,
			worked_hours = $5, overtime_hours = $6, status = $7, notes = $8, location = $9,
			latitude = $10, longitude = $11, day_type = $12, is_holiday = $13,
			approved_by = $14, approved_at = $15, signature_path = $16, signature_digest = $17,
			continuous_work = $18, continuous_work_confirmed = $19,
			continuous_work_confirmed_by = $20, continuous_work_confirmed_at = $21,
			version = version + 1, updated_at = $22
		WHERE id = $23 AND version = $24
	`

	tag, err := q.Exec(ctx, query,
		rec.Entry, rec.LunchOut, rec.LunchIn, rec.Exit,
		rec.WorkedHours, rec.OvertimeHours, string(rec.Status), rec.Notes, rec.Location,
		rec.Latitude, rec.Longitude, string(rec.DayType), rec.IsHoliday,
		rec.ApprovedBy, rec.ApprovedAt, rec.SignaturePath, rec.SignatureDigest,
		rec.ContinuousWork, rec.ContinuousWorkConfirmed,
		rec.ContinuousWorkConfirmedBy, rec.ContinuousWorkConfirmedAt,
		rec.UpdatedAt, rec.ID, rec.Version,
	)
	if err != nil {
		return timeclock.Record{}, fmt.Errorf("failed to update time record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeclock.Record{}, timeclock.ErrConcurrentModification
	}

	rec.Version++
	return rec, nil
}

// List implements timeclock.RecordRepository. filter must already be validated.
func (r *recordRepository) List(ctx context.Context, filter timeclock.RecordFilter) ([]timeclock.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conds []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.EmployeeID != nil {
		add("r.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.StartDate != nil {
		add("r.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("r.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil {
		st, _ := timeclock.ParseStatus(*filter.Status)
		add("r.status = $%d", string(st))
	}
	if filter.WorkSiteID != nil {
		add("e.work_site_id = $%d", *filter.WorkSiteID)
	}
	if filter.Role != nil {
		add("e.role ILIKE $%d", *filter.Role)
	}
	if filter.Shift != nil {
		add("e.shift ILIKE $%d", *filter.Shift)
	}
	if filter.OvertimeMin != nil {
		add("r.overtime_hours >= $%d", *filter.OvertimeMin)
	}
	if filter.OvertimeMax != nil {
		add("r.overtime_hours <= $%d", *filter.OvertimeMax)
	}
	if filter.Search != nil {
		add("e.name ILIKE $%d", "%"+strings.TrimSpace(*filter.Search)+"%")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+recordFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time records: %w", err)
	}

	orderCol, ok := timeclock.OrderColumn(filter.OrderBy)
	if !ok {
		orderCol = "r.date"
	}
	direction := "DESC"
	if filter.OrderDirection == "asc" {
		direction = "ASC"
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY %s %s, r.id LIMIT $%d OFFSET $%d`,
		recordColumns, recordFrom, where, orderCol, direction, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time records: %w", err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Find implements timeclock.RecordRepository.
func (r *recordRepository) Find(ctx context.Context, rq timeclock.RecordQuery) ([]timeclock.Record, error) {
	q := GetQuerier(ctx, r.db)

	conds := []string{"TRUE"}
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if rq.EmployeeID != nil {
		add("r.employee_id = $%d", *rq.EmployeeID)
	}
	if rq.WorkSiteID != nil {
		add("e.work_site_id = $%d", *rq.WorkSiteID)
	}
	if rq.StartDate != nil {
		add("r.date >= $%d", *rq.StartDate)
	}
	if rq.EndDate != nil {
		add("r.date <= $%d", *rq.EndDate)
	}
	if rq.Date != nil {
		add("r.date = $%d", *rq.Date)
	}
	if rq.Status != nil {
		add("r.status = $%d", string(*rq.Status))
	}
	if rq.OvertimeOnly {
		conds = append(conds, "r.overtime_hours > 0")
	}
	if rq.ZeroHoursOnly {
		conds = append(conds, "r.worked_hours = 0")
	}
	if rq.ContinuousOnly {
		conds = append(conds, "r.continuous_work")
	}
	if rq.Unconfirmed {
		conds = append(conds, "r.continuous_work_confirmed_at IS NULL")
	}

	query := `SELECT ` + recordColumns + recordFrom + ` WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY r.date DESC, e.name`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find time records: %w", err)
	}
	return collectRecords(rows)
}

// GetByIDs implements timeclock.RecordRepository.
func (r *recordRepository) GetByIDs(ctx context.Context, ids []string) ([]timeclock.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + recordColumns + recordFrom + ` WHERE r.id = ANY($1)`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get time records: %w", err)
	}
	return collectRecords(rows)
}
