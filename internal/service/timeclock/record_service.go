package timeclock

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/domain/employee"
	"github.com/gruamaster/ponto-backend-go/internal/domain/notification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/utils"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
)

const maxIntegrityProblems = 100

type RecordServiceImpl struct {
	base
}

func NewRecordService(deps Dependencies) timeclock.RecordService {
	return &RecordServiceImpl{base: newBase(deps)}
}

// RegisterStamp implements timeclock.RecordService.
func (s *RecordServiceImpl) RegisterStamp(ctx context.Context, req timeclock.StampRequest) (timeclock.StampResult, error) {
	if err := req.Validate(); err != nil {
		return timeclock.StampResult{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if date.After(s.today()) {
		return timeclock.StampResult{}, timeclock.ErrFutureDate
	}

	emp, err := s.activeEmployee(ctx, req.EmployeeID, timeclock.ErrEmployeeInactive)
	if err != nil {
		return timeclock.StampResult{}, err
	}
	if !emp.HasRole(s.Policy.FieldRoles) && !s.callerIsAdmin(ctx) {
		return timeclock.StampResult{}, timeclock.ErrRoleNotAllowed
	}

	site, err := s.workSite(ctx, emp)
	if err != nil {
		return timeclock.StampResult{}, err
	}
	if err := s.checkGeofence(req, site); err != nil {
		return timeclock.StampResult{}, err
	}

	existing, err := s.Records.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return timeclock.StampResult{}, fmt.Errorf("failed to get time record: %w", err)
	}

	var stored timeclock.Record
	created := false
	if existing == nil {
		stored, created, err = s.create(ctx, req, emp, site, date)
	} else {
		stored, err = s.applyStamp(ctx, *existing, req)
	}
	if err != nil {
		return timeclock.StampResult{}, err
	}

	if stored.OvertimeHours > 0 && (existing == nil || existing.OvertimeHours == 0) {
		s.notifySiteManagers(ctx, emp, stored)
	}

	return timeclock.StampResult{Record: timeclock.NewRecordResponse(stored), Created: created}, nil
}

func (s *RecordServiceImpl) create(ctx context.Context, req timeclock.StampRequest, emp employee.Employee, site *employee.WorkSite, date time.Time) (timeclock.Record, bool, error) {
	if err := checkSequence(timeclock.Record{}, req); err != nil {
		return timeclock.Record{}, false, err
	}

	dayType, isHoliday, err := s.resolveDayType(ctx, req.DayType, site, date)
	if err != nil {
		return timeclock.Record{}, false, err
	}

	now := s.now()
	record := timeclock.Record{
		ID:         ulid.MustNew(ulid.Timestamp(now), ulid.Monotonic(rand.Reader, 0)).String(),
		EmployeeID: emp.ID,
		Date:       date,
		DayType:    dayType,
		IsHoliday:  isHoliday,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	mergeStamp(&record, req)
	s.calc.Apply(&record)

	stored, created, err := s.Records.Insert(ctx, record)
	if err != nil {
		return timeclock.Record{}, false, fmt.Errorf("failed to create time record: %w", err)
	}
	if created {
		return stored, true, nil
	}

	// Another request created the day's record first; treat ours as a follow-up stamp.
	updated, err := s.applyStamp(ctx, stored, req)
	return updated, false, err
}

func (s *RecordServiceImpl) applyStamp(ctx context.Context, existing timeclock.Record, req timeclock.StampRequest) (timeclock.Record, error) {
	if err := checkSequence(existing, req); err != nil {
		return timeclock.Record{}, err
	}

	record := existing
	mergeStamp(&record, req)
	if req.DayType != nil {
		dayType, _ := timecalc.ParseDayType(*req.DayType)
		record.DayType = dayType
		record.IsHoliday = dayType.IsHoliday()
	}
	s.calc.Apply(&record)
	record.UpdatedAt = s.now()

	updated, err := s.Records.Update(ctx, record)
	if err != nil {
		if errors.Is(err, timeclock.ErrConcurrentModification) {
			return timeclock.Record{}, err
		}
		return timeclock.Record{}, fmt.Errorf("failed to update time record: %w", err)
	}
	return updated, nil
}

// checkSequence enforces the progressive fill order against the stored stamps.
func checkSequence(existing timeclock.Record, req timeclock.StampRequest) error {
	if req.Entry != nil && existing.Entry != nil && existing.Exit == nil {
		return timeclock.ErrEntryAlreadyOpen
	}
	if req.LunchOut != nil && existing.LunchOut != nil && existing.LunchIn == nil {
		return timeclock.ErrLunchAlreadyOpen
	}
	if req.LunchIn != nil && existing.LunchOut == nil && req.LunchOut == nil {
		return timeclock.ErrLunchInBeforeLunchOut
	}
	if req.Exit != nil && existing.Exit != nil {
		return timeclock.ErrExitAlreadyRegistered
	}
	if req.Exit != nil && existing.Entry == nil && req.Entry == nil {
		return timeclock.ErrExitBeforeEntry
	}
	return nil
}

// mergeStamp copies the supplied fields over the record. Absent fields keep their stored value.
func mergeStamp(r *timeclock.Record, req timeclock.StampRequest) {
	if req.Entry != nil {
		r.Entry = req.Entry
	}
	if req.LunchOut != nil {
		r.LunchOut = req.LunchOut
	}
	if req.LunchIn != nil {
		r.LunchIn = req.LunchIn
	}
	if req.Exit != nil {
		r.Exit = req.Exit
	}
	if req.Notes != nil && *req.Notes != "" {
		r.Notes = req.Notes
	}
	if req.Location != nil && *req.Location != "" {
		r.Location = req.Location
	}
	if req.Latitude != nil && req.Longitude != nil {
		r.Latitude, r.Longitude = req.Latitude, req.Longitude
	}
	if req.ContinuousWork != nil {
		r.ContinuousWork = *req.ContinuousWork
	}
}

func (s *RecordServiceImpl) workSite(ctx context.Context, emp employee.Employee) (*employee.WorkSite, error) {
	if emp.WorkSiteID == nil {
		return nil, nil
	}
	site, err := s.Employees.GetWorkSite(ctx, *emp.WorkSiteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work site: %w", err)
	}
	return &site, nil
}

func (s *RecordServiceImpl) checkGeofence(req timeclock.StampRequest, site *employee.WorkSite) error {
	if !s.Policy.GeofenceEnabled || req.Latitude == nil || req.Longitude == nil {
		return nil
	}
	if site == nil || !site.HasCoordinates() {
		return nil
	}
	if !utils.WithinRadius(*req.Latitude, *req.Longitude, *site.Latitude, *site.Longitude, s.Policy.GeofenceRadiusMeters) {
		return timeclock.ErrOutsideWorkSite
	}
	return nil
}

// resolveDayType prefers an explicit day type, then the holiday calendar for
// the work site's state, then the weekday.
func (s *RecordServiceImpl) resolveDayType(ctx context.Context, explicit *string, site *employee.WorkSite, date time.Time) (timecalc.DayType, bool, error) {
	if explicit != nil {
		dayType, err := timecalc.ParseDayType(*explicit)
		if err != nil {
			return "", false, timeclock.ErrInvalidDayType
		}
		return dayType, dayType.IsHoliday(), nil
	}

	var state *string
	if site != nil {
		state = site.State
	}
	holidays, err := s.Holidays.ListByDate(ctx, date, state)
	if err != nil {
		return "", false, fmt.Errorf("failed to look up holidays: %w", err)
	}
	for _, h := range holidays {
		if h.Optional {
			continue
		}
		if dayType, ok := timecalc.HolidayDayType(h.Type); ok {
			return dayType, true, nil
		}
	}
	return timecalc.DayTypeForWeekday(date), false, nil
}

func (s *RecordServiceImpl) notifySiteManagers(ctx context.Context, emp employee.Employee, r timeclock.Record) {
	if emp.WorkSiteID == nil {
		return
	}
	managers, err := s.Employees.ListActive(ctx, employee.ListFilter{WorkSiteID: emp.WorkSiteID})
	if err != nil {
		s.Logger.Warn("failed to list site managers", slog.String("record_id", r.ID), slog.Any("error", err))
		return
	}
	for _, m := range managers {
		if !m.HasRole(s.Policy.ManagerRoles) {
			continue
		}
		s.notify(ctx, notification.CreateNotificationRequest{
			RecipientID: m.ID,
			Type:        notification.TypeInfo,
			Title:       "Horas Extras Registradas",
			Message:     fmt.Sprintf("%s registrou %.2fh extras em %s", emp.Name, r.OvertimeHours, r.Date.Format("02/01/2006")),
			Link:        strPtr("/pwa/aprovacoes"),
			Data:        map[string]interface{}{"registro_ponto_id": r.ID},
		})
	}
}

// EditStamp implements timeclock.RecordService.
func (s *RecordServiceImpl) EditStamp(ctx context.Context, req timeclock.EditRequest) (timeclock.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.RecordResponse{}, err
	}
	caller, err := s.caller(ctx)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}

	record, err := s.loadRecord(ctx, req.ID)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}

	now := s.now()
	var changes []timeclock.Alteration
	edit := func(field string, target **string, value *string) {
		if value == nil || (*target != nil && **target == *value) {
			return
		}
		changes = append(changes, timeclock.Alteration{
			ID:            uuid.New().String(),
			RecordID:      record.ID,
			Field:         field,
			OldValue:      *target,
			NewValue:      value,
			Justification: req.Justification,
			ChangedBy:     caller.UserID,
			ChangedAt:     now,
		})
		*target = value
	}
	edit(timeclock.FieldEntry, &record.Entry, req.Entry)
	edit(timeclock.FieldLunchOut, &record.LunchOut, req.LunchOut)
	edit(timeclock.FieldLunchIn, &record.LunchIn, req.LunchIn)
	edit(timeclock.FieldExit, &record.Exit, req.Exit)

	if req.Notes != nil {
		record.Notes = req.Notes
	}
	if req.Location != nil {
		record.Location = req.Location
	}

	s.calc.Apply(&record)
	record.UpdatedAt = now

	// Only approval decisions replace the computed status, and only approvers may make them.
	var decision *timeclock.ApprovalEvent
	if req.Status != nil {
		if status, err := timeclock.ParseStatus(*req.Status); err == nil && status.IsOverride() {
			if !s.Authorizer.CanApprove(ctx) {
				return timeclock.RecordResponse{}, auth.ErrForbidden
			}
			record.Status = status
			var event timeclock.ApprovalEvent
			if status == timeclock.StatusApproved {
				record.ApprovedBy = &caller.UserID
				record.ApprovedAt = &now
				event = s.newEvent(record, timeclock.EventApproved, caller.UserID, now)
				event.Notes = &req.Justification
			} else {
				event = s.newEvent(record, timeclock.EventRejected, caller.UserID, now)
				event.Reason = &req.Justification
			}
			decision = &event
		}
	}

	var updated timeclock.Record
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.Records.Update(ctx, record)
		if err != nil {
			return err
		}
		if decision != nil {
			if err := s.Events.Append(ctx, *decision); err != nil {
				return err
			}
		}
		if len(changes) == 0 {
			return nil
		}
		return s.History.CreateBatch(ctx, changes)
	})
	if err != nil {
		if errors.Is(err, timeclock.ErrConcurrentModification) {
			return timeclock.RecordResponse{}, err
		}
		return timeclock.RecordResponse{}, fmt.Errorf("failed to edit time record: %w", err)
	}
	if decision != nil {
		s.publish(ctx, updated, *decision)
	}

	return timeclock.NewRecordResponse(updated), nil
}

// GetRecord implements timeclock.RecordService.
func (s *RecordServiceImpl) GetRecord(ctx context.Context, id string) (timeclock.RecordResponse, error) {
	record, err := s.loadRecord(ctx, id)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}
	return timeclock.NewRecordResponse(record), nil
}

// ListRecords implements timeclock.RecordService.
func (s *RecordServiceImpl) ListRecords(ctx context.Context, filter timeclock.RecordFilter) (timeclock.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return timeclock.ListRecordsResponse{}, err
	}

	records, total, err := s.Records.List(ctx, filter)
	if err != nil {
		return timeclock.ListRecordsResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	return timeclock.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Showing:    timeclock.ShowingRange(filter.Page, filter.Limit, len(records), total),
		Records:    toRecordResponses(records),
	}, nil
}

// ListHistory implements timeclock.RecordService.
func (s *RecordServiceImpl) ListHistory(ctx context.Context, recordID string) ([]timeclock.AlterationResponse, error) {
	entries, err := s.History.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alteration history: %w", err)
	}

	out := make([]timeclock.AlterationResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, timeclock.AlterationResponse{
			ID:            e.ID,
			RecordID:      e.RecordID,
			Field:         e.Field,
			OldValue:      e.OldValue,
			NewValue:      e.NewValue,
			Justification: e.Justification,
			ChangedBy:     e.ChangedBy,
			ChangedAt:     e.ChangedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// Recalculate implements timeclock.RecordService. Approved and rejected
// records keep their decision; only their hours are refreshed.
func (s *RecordServiceImpl) Recalculate(ctx context.Context, req timeclock.RecalculateRequest) (timeclock.RecalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.RecalculateResponse{}, err
	}

	q := timeclock.RecordQuery{
		EmployeeID:    req.EmployeeID,
		StartDate:     parseOptionalDate(req.StartDate),
		EndDate:       parseOptionalDate(req.EndDate),
		ZeroHoursOnly: !req.RecalculateAll,
	}
	records, err := s.Records.Find(ctx, q)
	if err != nil {
		return timeclock.RecalculateResponse{}, fmt.Errorf("failed to find time records: %w", err)
	}

	resp := timeclock.RecalculateResponse{Total: len(records), Errors: []timeclock.RecalculateError{}}
	for _, record := range records {
		before := record
		status := record.Status
		s.calc.Apply(&record)
		if status.IsOverride() {
			record.Status = status
		}
		if record.WorkedHours == before.WorkedHours && record.OvertimeHours == before.OvertimeHours && record.Status == before.Status {
			continue
		}
		record.UpdatedAt = s.now()
		if _, err := s.Records.Update(ctx, record); err != nil {
			resp.Errors = append(resp.Errors, timeclock.RecalculateError{RecordID: record.ID, Error: err.Error()})
			continue
		}
		resp.Updated++
	}

	s.Logger.Info("time records recalculated",
		slog.Int("total", resp.Total),
		slog.Int("updated", resp.Updated),
		slog.Int("errors", len(resp.Errors)),
	)
	return resp, nil
}

// ValidateRecords implements timeclock.RecordService.
func (s *RecordServiceImpl) ValidateRecords(ctx context.Context, filter timeclock.IntegrityFilter) (timeclock.IntegrityReport, error) {
	if err := filter.Validate(); err != nil {
		return timeclock.IntegrityReport{}, err
	}

	records, err := s.Records.Find(ctx, timeclock.RecordQuery{
		EmployeeID: filter.EmployeeID,
		StartDate:  parseOptionalDate(filter.StartDate),
		EndDate:    parseOptionalDate(filter.EndDate),
	})
	if err != nil {
		return timeclock.IntegrityReport{}, fmt.Errorf("failed to find time records: %w", err)
	}

	report := timeclock.IntegrityReport{
		Stats:    timeclock.IntegrityStats{Total: len(records)},
		Problems: []timeclock.IntegrityProblem{},
	}
	for _, r := range records {
		var problems []string
		if r.Entry == nil {
			problems = append(problems, "missing entry")
			report.Stats.MissingEntry++
		}
		if r.Exit == nil {
			problems = append(problems, "missing exit")
			report.Stats.MissingExit++
		}
		if r.Entry != nil && r.Exit != nil && r.WorkedHours == 0 {
			problems = append(problems, "zero worked hours with entry and exit")
			report.Stats.ZeroHours++
		}
		if !r.Status.IsValid() {
			problems = append(problems, "missing or unknown status")
			report.Stats.MissingStatus++
		}
		if r.Entry != nil && r.Exit != nil && *r.Entry == *r.Exit {
			problems = append(problems, "entry equals exit")
			report.Stats.EntryEqualsExit++
		}
		if len(problems) == 0 {
			continue
		}

		report.Stats.WithProblems++
		report.TotalProblems++
		if len(report.Problems) < maxIntegrityProblems {
			name := ""
			if r.EmployeeName != nil {
				name = *r.EmployeeName
			}
			report.Problems = append(report.Problems, timeclock.IntegrityProblem{
				RecordID:     r.ID,
				EmployeeName: name,
				Date:         r.Date.Format("2006-01-02"),
				Problems:     problems,
			})
		}
	}
	return report, nil
}

// ListPendingContinuousWork implements timeclock.RecordService.
func (s *RecordServiceImpl) ListPendingContinuousWork(ctx context.Context, date string, workSiteID *string) ([]timeclock.RecordResponse, error) {
	day := s.today()
	if date != "" {
		d, ok := validator.IsValidDate(date)
		if !ok {
			return nil, timeclock.ErrInvalidDate
		}
		day = d
	}

	records, err := s.Records.Find(ctx, timeclock.RecordQuery{
		Date:           &day,
		WorkSiteID:     workSiteID,
		ContinuousOnly: true,
		Unconfirmed:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find continuous work records: %w", err)
	}
	return toRecordResponses(records), nil
}

// ConfirmContinuousWork implements timeclock.RecordService. Confirming adds
// the policy's bonus to the record's overtime; revoking removes it again.
func (s *RecordServiceImpl) ConfirmContinuousWork(ctx context.Context, req timeclock.ContinuousWorkRequest) (timeclock.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.RecordResponse{}, err
	}
	caller, err := s.caller(ctx)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}
	if caller.EmployeeID == nil {
		return timeclock.RecordResponse{}, auth.ErrNoLinkedEmployee
	}

	record, err := s.loadRecord(ctx, req.RecordID)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}
	if !record.ContinuousWork {
		return timeclock.RecordResponse{}, timeclock.ErrNotContinuousWork
	}

	now := s.now()
	status := record.Status
	record.ContinuousWorkConfirmed = *req.Confirmed
	record.ContinuousWorkConfirmedBy = caller.EmployeeID
	record.ContinuousWorkConfirmedAt = &now
	s.calc.Apply(&record)
	if status.IsOverride() {
		record.Status = status
	}
	if req.Notes != nil && *req.Notes != "" {
		record.Notes = req.Notes
	}
	record.UpdatedAt = now

	updated, err := s.Records.Update(ctx, record)
	if err != nil {
		if errors.Is(err, timeclock.ErrConcurrentModification) {
			return timeclock.RecordResponse{}, err
		}
		return timeclock.RecordResponse{}, fmt.Errorf("failed to confirm continuous work: %w", err)
	}
	return timeclock.NewRecordResponse(updated), nil
}

// ListEmployees implements timeclock.RecordService.
func (s *RecordServiceImpl) ListEmployees(ctx context.Context) (timeclock.EmployeeListResponse, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return timeclock.EmployeeListResponse{}, err
	}

	resp := timeclock.EmployeeListResponse{Employees: []timeclock.EmployeeSummary{}}
	var employees []employee.Employee

	if s.callerIsAdmin(ctx) {
		resp.IsAdmin = true
		employees, err = s.Employees.ListActive(ctx, employee.ListFilter{})
		if err != nil {
			return timeclock.EmployeeListResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
	} else if caller.EmployeeID != nil {
		employees, err = s.Employees.ListActive(ctx, employee.ListFilter{IDs: []string{*caller.EmployeeID}})
		if err != nil {
			return timeclock.EmployeeListResponse{}, fmt.Errorf("failed to get employee: %w", err)
		}
	}

	for _, e := range employees {
		resp.Employees = append(resp.Employees, timeclock.EmployeeSummary{
			ID:     e.ID,
			Name:   e.Name,
			Role:   e.Role,
			Shift:  e.Shift,
			Status: e.Status,
		})
	}
	return resp, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &t
}
