package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/domain/holiday"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stamp(employeeID, date string) timeclock.StampRequest {
	return timeclock.StampRequest{EmployeeID: employeeID, Date: date}
}

func withEntry(r timeclock.StampRequest, v string) timeclock.StampRequest    { r.Entry = &v; return r }
func withLunchOut(r timeclock.StampRequest, v string) timeclock.StampRequest { r.LunchOut = &v; return r }
func withLunchIn(r timeclock.StampRequest, v string) timeclock.StampRequest  { r.LunchIn = &v; return r }
func withExit(r timeclock.StampRequest, v string) timeclock.StampRequest     { r.Exit = &v; return r }

func TestRegisterStampProgressiveFill(t *testing.T) {
	f := newFixture()
	svc := f.recordService()
	ctx := context.Background()
	day := stamp("op-1", "2026-10-15")

	res, err := svc.RegisterStamp(ctx, withEntry(day, "07:00"))
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, timeclock.StatusInProgress, res.Record.Status)
	assert.Equal(t, "normal", res.Record.DayType)
	assert.Len(t, res.Record.ID, 26)

	res, err = svc.RegisterStamp(ctx, withLunchOut(day, "12:00"))
	require.NoError(t, err)
	assert.False(t, res.Created)

	res, err = svc.RegisterStamp(ctx, withLunchIn(day, "13:00"))
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusInProgress, res.Record.Status)

	res, err = svc.RegisterStamp(ctx, withExit(day, "17:00"))
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 9.0, res.Record.WorkedHours)
	assert.Equal(t, 0.0, res.Record.OvertimeHours)
	assert.Equal(t, timeclock.StatusComplete, res.Record.Status)
	assert.Equal(t, 4, res.Record.Version)
	assert.Empty(t, f.history.entries, "progressive fill never writes alteration history")
}

func TestRegisterStampSequencing(t *testing.T) {
	ctx := context.Background()

	t.Run("second exit is rejected", func(t *testing.T) {
		svc := newFixture().recordService()
		_, err := svc.RegisterStamp(ctx, withEntry(stamp("op-1", "2026-10-15"), "07:00"))
		require.NoError(t, err)
		_, err = svc.RegisterStamp(ctx, withExit(stamp("op-1", "2026-10-15"), "17:00"))
		require.NoError(t, err)

		_, err = svc.RegisterStamp(ctx, withExit(stamp("op-1", "2026-10-15"), "17:00"))
		assert.ErrorIs(t, err, timeclock.ErrExitAlreadyRegistered)
	})

	t.Run("entry while a session is open", func(t *testing.T) {
		svc := newFixture().recordService()
		_, err := svc.RegisterStamp(ctx, withEntry(stamp("op-1", "2026-10-15"), "07:00"))
		require.NoError(t, err)

		_, err = svc.RegisterStamp(ctx, withEntry(stamp("op-1", "2026-10-15"), "07:05"))
		assert.ErrorIs(t, err, timeclock.ErrEntryAlreadyOpen)
	})

	t.Run("lunch-out while lunch is open", func(t *testing.T) {
		svc := newFixture().recordService()
		day := stamp("op-1", "2026-10-15")
		_, err := svc.RegisterStamp(ctx, withLunchOut(withEntry(day, "07:00"), "12:00"))
		require.NoError(t, err)

		_, err = svc.RegisterStamp(ctx, withLunchOut(day, "12:10"))
		assert.ErrorIs(t, err, timeclock.ErrLunchAlreadyOpen)
	})

	t.Run("lunch-in without lunch-out", func(t *testing.T) {
		svc := newFixture().recordService()
		_, err := svc.RegisterStamp(ctx, withLunchIn(stamp("op-1", "2026-10-15"), "13:00"))
		assert.ErrorIs(t, err, timeclock.ErrLunchInBeforeLunchOut)

		_, err = svc.RegisterStamp(ctx, withEntry(stamp("op-1", "2026-10-15"), "07:00"))
		require.NoError(t, err)
		_, err = svc.RegisterStamp(ctx, withLunchIn(stamp("op-1", "2026-10-15"), "13:00"))
		assert.ErrorIs(t, err, timeclock.ErrLunchInBeforeLunchOut)
	})

	t.Run("exit without entry", func(t *testing.T) {
		svc := newFixture().recordService()
		_, err := svc.RegisterStamp(ctx, withExit(stamp("op-1", "2026-10-15"), "17:00"))
		assert.ErrorIs(t, err, timeclock.ErrExitBeforeEntry)
	})

	t.Run("new entry after a closed session", func(t *testing.T) {
		svc := newFixture().recordService()
		_, err := svc.RegisterStamp(ctx, withExit(withEntry(stamp("op-1", "2026-10-15"), "07:00"), "11:00"))
		require.NoError(t, err)

		res, err := svc.RegisterStamp(ctx, withEntry(stamp("op-1", "2026-10-15"), "08:00"))
		require.NoError(t, err)
		assert.Equal(t, "08:00", *res.Record.Entry)
	})
}

func TestRegisterStampValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("inactive employee", func(t *testing.T) {
		_, err := newFixture().recordService().RegisterStamp(ctx, withEntry(stamp("gone-1", "2026-10-15"), "07:00"))
		assert.ErrorIs(t, err, timeclock.ErrEmployeeInactive)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := newFixture().recordService().RegisterStamp(ctx, withEntry(stamp("nobody", "2026-10-15"), "07:00"))
		assert.ErrorIs(t, err, timeclock.ErrEmployeeInactive)
	})

	t.Run("future date", func(t *testing.T) {
		_, err := newFixture().recordService().RegisterStamp(ctx, withEntry(stamp("op-1", "2026-10-19"), "07:00"))
		assert.ErrorIs(t, err, timeclock.ErrFutureDate)
	})

	t.Run("impossible calendar date", func(t *testing.T) {
		_, err := newFixture().recordService().RegisterStamp(ctx, withEntry(stamp("op-1", "2026-02-30"), "07:00"))
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := newFixture().recordService().RegisterStamp(ctx, withEntry(stamp("op-1", "2026-10-15"), "25:00"))
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "entrada", verrs[0].Field)
	})

	t.Run("role outside field crews", func(t *testing.T) {
		_, err := newFixture().recordService().RegisterStamp(ctx, withEntry(stamp("tec-1", "2026-10-15"), "07:00"))
		assert.ErrorIs(t, err, timeclock.ErrRoleNotAllowed)
	})

	t.Run("admin may stamp for any role", func(t *testing.T) {
		f := newFixture()
		f.authz.admin = true
		_, err := f.recordService().RegisterStamp(ctx, withEntry(stamp("tec-1", "2026-10-15"), "07:00"))
		assert.NoError(t, err)
	})

	t.Run("accent and case insensitive role", func(t *testing.T) {
		_, err := newFixture().recordService().RegisterStamp(ctx, withEntry(stamp("sin-1", "2026-10-15"), "07:00"))
		assert.NoError(t, err)
	})
}

func TestRegisterStampGeofence(t *testing.T) {
	f := newFixture()
	f.policy.GeofenceEnabled = true
	svc := f.recordService()
	ctx := context.Background()

	far := withEntry(stamp("op-1", "2026-10-15"), "07:00")
	lat, lon := -22.9009, -43.1776
	far.Latitude, far.Longitude = &lat, &lon
	_, err := svc.RegisterStamp(ctx, far)
	assert.ErrorIs(t, err, timeclock.ErrOutsideWorkSite)

	near := withEntry(stamp("op-1", "2026-10-15"), "07:00")
	nlat, nlon := -23.5600, -46.6400
	near.Latitude, near.Longitude = &nlat, &nlon
	_, err = svc.RegisterStamp(ctx, near)
	assert.NoError(t, err)
}

func TestRegisterStampDayType(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	rj := "RJ"

	f := newFixture()
	f.holidays.holidays = []holiday.Holiday{
		{Date: monday, Name: "Nossa Senhora Aparecida", Type: "nacional"},
		{Date: tuesday, Name: "Ponto facultativo", Type: "nacional", Optional: true},
		{Date: tuesday, Name: "Feriado estadual RJ", Type: "estadual", State: &rj},
	}
	svc := f.recordService()

	res, err := svc.RegisterStamp(ctx, withExit(withEntry(stamp("op-1", "2026-10-12"), "07:00"), "11:00"))
	require.NoError(t, err)
	assert.Equal(t, string(timecalc.DayNationalHoliday), res.Record.DayType)
	assert.True(t, res.Record.IsHoliday)
	assert.Equal(t, 4.0, res.Record.OvertimeHours)

	res, err = svc.RegisterStamp(ctx, withEntry(stamp("op-1", "2026-10-13"), "07:00"))
	require.NoError(t, err)
	assert.Equal(t, "normal", res.Record.DayType)
	assert.False(t, res.Record.IsHoliday)

	explicit := withEntry(stamp("sin-1", "2026-10-13"), "07:00")
	dt := "Sábado"
	explicit.DayType = &dt
	res, err = svc.RegisterStamp(ctx, explicit)
	require.NoError(t, err)
	assert.Equal(t, "sabado", res.Record.DayType)
}

func TestRegisterStampNotifiesManagersOfOvertime(t *testing.T) {
	f := newFixture()
	svc := f.recordService()

	_, err := svc.RegisterStamp(context.Background(), withExit(withEntry(stamp("op-1", "2026-10-17"), "07:00"), "19:00"))
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "sup-a", f.notifier.sent[0].RecipientID)
}

func TestRegisterStampNotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.notifier.err = assert.AnError
	svc := f.recordService()

	res, err := svc.RegisterStamp(context.Background(), withExit(withEntry(stamp("op-1", "2026-10-17"), "07:00"), "19:00"))
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusPendingApproval, res.Record.Status)
}

// racyRecords hides existing rows from the pre-check so the insert loses the race.
type racyRecords struct {
	*memoryRecords
}

func (racyRecords) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timeclock.Record, error) {
	return nil, nil
}

func TestRegisterStampLosesInsertRace(t *testing.T) {
	f := newFixture()
	existing := recordOn("2026-10-15", timecalc.DayNormal, "07:00", "", "", "")
	existing.ID = "rec-1"
	existing.EmployeeID = "op-1"
	existing.Status = timeclock.StatusInProgress
	f.records.put(existing)

	deps := f.deps()
	deps.Records = racyRecords{f.records}
	svc := NewRecordService(deps)

	res, err := svc.RegisterStamp(context.Background(), withExit(stamp("op-1", "2026-10-15"), "17:00"))
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "rec-1", res.Record.ID)
	assert.Equal(t, 10.0, res.Record.WorkedHours)
}

func editReq(id string) timeclock.EditRequest {
	return timeclock.EditRequest{ID: id, Justification: "Relógio da obra sem energia"}
}

func TestEditStamp(t *testing.T) {
	ctx := context.Background()

	seed := func(f *fixture) {
		r := recordOn("2026-10-15", timecalc.DayNormal, "07:00", "12:00", "13:00", "16:00")
		r.ID = "rec-1"
		r.EmployeeID = "op-1"
		DefaultCalculator().Apply(&r)
		f.records.put(r)
	}

	t.Run("justification is required", func(t *testing.T) {
		f := newFixture()
		seed(f)
		req := editReq("rec-1")
		req.Justification = " "
		_, err := f.recordService().EditStamp(ctx, req)
		assert.ErrorIs(t, err, timeclock.ErrJustificationRequired)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := newFixture().recordService().EditStamp(ctx, editReq("nope"))
		assert.ErrorIs(t, err, timeclock.ErrRecordNotFound)
	})

	t.Run("writes one history row per changed stamp", func(t *testing.T) {
		f := newFixture()
		seed(f)
		req := editReq("rec-1")
		exit, entry, lunchOut := "17:00:00", "07:00", "12:00"
		req.Exit, req.Entry, req.LunchOut = &exit, &entry, &lunchOut

		res, err := f.recordService().EditStamp(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "17:00", *res.Exit)
		assert.Equal(t, 9.0, res.WorkedHours)
		assert.Equal(t, timeclock.StatusComplete, res.Status)

		require.Len(t, f.history.entries, 1)
		h := f.history.entries[0]
		assert.Equal(t, timeclock.FieldExit, h.Field)
		assert.Equal(t, "16:00", *h.OldValue)
		assert.Equal(t, "17:00", *h.NewValue)
		assert.Equal(t, "user-sup-a", h.ChangedBy)
		assert.Equal(t, "Relógio da obra sem energia", h.Justification)
	})

	t.Run("only approval decisions override the computed status", func(t *testing.T) {
		f := newFixture()
		seed(f)
		svc := f.recordService()

		req := editReq("rec-1")
		status := "Atraso"
		req.Status = &status
		res, err := svc.EditStamp(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, timeclock.StatusComplete, res.Status)

		f.authz.admin = true
		status = "aprovado"
		res, err = svc.EditStamp(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, timeclock.StatusApproved, res.Status)
		require.NotNil(t, res.ApprovedBy)
		assert.Equal(t, "user-sup-a", *res.ApprovedBy)
		assert.NotNil(t, res.ApprovedAt)

		require.Len(t, f.events.events, 1)
		assert.Equal(t, timeclock.EventApproved, f.events.events[0].Type)
		assert.Equal(t, "user-sup-a", f.events.events[0].Actor)
		require.Len(t, f.publisher.events, 1)
	})

	t.Run("status decision requires an approver", func(t *testing.T) {
		f := newFixture()
		seed(f)
		f.authz.caller = auth.Caller{UserID: "user-op-1", EmployeeID: strPtr("op-1"), Role: "Operário"}

		req := editReq("rec-1")
		status := "Aprovado"
		req.Status = &status
		_, err := f.recordService().EditStamp(ctx, req)
		require.ErrorIs(t, err, auth.ErrForbidden)

		stored, _ := f.records.GetByID(ctx, "rec-1")
		assert.Equal(t, timeclock.StatusComplete, stored.Status)
		assert.Empty(t, f.events.events)
	})

	t.Run("rejection through an edit is logged with its justification", func(t *testing.T) {
		f := newFixture()
		seed(f)
		f.authz.admin = true

		req := editReq("rec-1")
		status := "Rejeitado"
		req.Status = &status
		res, err := f.recordService().EditStamp(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, timeclock.StatusRejected, res.Status)

		require.Len(t, f.events.events, 1)
		assert.Equal(t, timeclock.EventRejected, f.events.events[0].Type)
		assert.Equal(t, "Relógio da obra sem energia", *f.events.events[0].Reason)
	})
}

func TestListHistoryNewestFirst(t *testing.T) {
	f := newFixture()
	r := recordOn("2026-10-15", timecalc.DayNormal, "07:00", "", "", "16:00")
	r.ID = "rec-1"
	r.EmployeeID = "op-1"
	f.records.put(r)
	svc := f.recordService()
	ctx := context.Background()

	first := editReq("rec-1")
	exit := "16:30"
	first.Exit = &exit
	_, err := svc.EditStamp(ctx, first)
	require.NoError(t, err)

	second := editReq("rec-1")
	exit2 := "17:00"
	second.Exit = &exit2
	_, err = svc.EditStamp(ctx, second)
	require.NoError(t, err)

	history, err := svc.ListHistory(ctx, "rec-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "17:00", *history[0].NewValue)
	assert.Equal(t, "16:30", *history[1].NewValue)
}

func TestListRecords(t *testing.T) {
	f := newFixture()
	for i, date := range []string{"2026-10-13", "2026-10-14", "2026-10-15"} {
		r := recordOn(date, timecalc.DayNormal, "07:00", "", "", "17:00")
		r.ID = "rec-" + date
		r.EmployeeID = "op-1"
		r.Version = i + 1
		f.records.put(r)
	}

	res, err := f.recordService().ListRecords(context.Background(), timeclock.RecordFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalCount)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, "3-3 of 3", res.Showing)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "2026-10-13", res.Records[0].Date)

	short := "ab"
	_, err = f.recordService().ListRecords(context.Background(), timeclock.RecordFilter{Search: &short})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestRecalculate(t *testing.T) {
	f := newFixture()

	stale := recordOn("2026-10-15", timecalc.DayNormal, "07:00", "", "", "17:00")
	stale.ID = "stale"
	stale.EmployeeID = "op-1"
	stale.Status = timeclock.StatusInProgress
	f.records.put(stale)

	approved := recordOn("2026-10-17", timecalc.DaySaturday, "07:00", "", "", "12:00")
	approved.ID = "approved"
	approved.EmployeeID = "op-1"
	approved.Status = timeclock.StatusApproved
	f.records.put(approved)

	res, err := f.recordService().Recalculate(context.Background(), timeclock.RecalculateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Updated)
	assert.Empty(t, res.Errors)

	got, _ := f.records.GetByID(context.Background(), "stale")
	assert.Equal(t, 10.0, got.WorkedHours)
	assert.Equal(t, timeclock.StatusComplete, got.Status)

	got, _ = f.records.GetByID(context.Background(), "approved")
	assert.Equal(t, 5.0, got.OvertimeHours)
	assert.Equal(t, timeclock.StatusApproved, got.Status)
}

func TestValidateRecords(t *testing.T) {
	f := newFixture()
	name := "João Silva"

	open := recordOn("2026-10-14", timecalc.DayNormal, "07:00", "", "", "")
	open.ID, open.EmployeeID, open.EmployeeName, open.Status = "open", "op-1", &name, timeclock.StatusInProgress
	f.records.put(open)

	same := recordOn("2026-10-15", timecalc.DayNormal, "07:00", "", "", "07:00")
	same.ID, same.EmployeeID, same.EmployeeName = "same", "op-1", &name
	f.records.put(same)

	ok := recordOn("2026-10-16", timecalc.DayNormal, "07:00", "", "", "16:00")
	ok.ID, ok.EmployeeID = "ok", "op-1"
	DefaultCalculator().Apply(&ok)
	f.records.put(ok)

	report, err := f.recordService().ValidateRecords(context.Background(), timeclock.IntegrityFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Stats.Total)
	assert.Equal(t, 2, report.Stats.WithProblems)
	assert.Equal(t, 1, report.Stats.MissingExit)
	assert.Equal(t, 1, report.Stats.ZeroHours)
	assert.Equal(t, 1, report.Stats.MissingStatus)
	assert.Equal(t, 1, report.Stats.EntryEqualsExit)
	assert.Equal(t, 2, report.TotalProblems)
	require.Len(t, report.Problems, 2)
	assert.Equal(t, "same", report.Problems[0].RecordID)
	assert.Equal(t, "João Silva", report.Problems[0].EmployeeName)
}

func TestContinuousWork(t *testing.T) {
	ctx := context.Background()
	seed := func(f *fixture, continuous bool) {
		r := recordOn("2026-10-16", timecalc.DayNormal, "07:00", "", "", "16:00")
		r.ID, r.EmployeeID, r.ContinuousWork = "rec-1", "op-1", continuous
		r.WorkSiteID = strPtr(siteA)
		DefaultCalculator().Apply(&r)
		f.records.put(r)
	}
	yes, no := true, false

	t.Run("pending list and confirmation bonus", func(t *testing.T) {
		f := newFixture()
		seed(f, true)
		svc := f.recordService()

		pending, err := svc.ListPendingContinuousWork(ctx, "2026-10-16", strPtr(siteA))
		require.NoError(t, err)
		require.Len(t, pending, 1)

		res, err := svc.ConfirmContinuousWork(ctx, timeclock.ContinuousWorkRequest{RecordID: "rec-1", Confirmed: &yes})
		require.NoError(t, err)
		assert.True(t, res.ContinuousWorkConfirmed)
		assert.Equal(t, 1.0, res.OvertimeHours)
		assert.Equal(t, "sup-a", *res.ContinuousWorkConfirmedBy)

		pending, err = svc.ListPendingContinuousWork(ctx, "2026-10-16", strPtr(siteA))
		require.NoError(t, err)
		assert.Empty(t, pending)

		res, err = svc.ConfirmContinuousWork(ctx, timeclock.ContinuousWorkRequest{RecordID: "rec-1", Confirmed: &no})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.OvertimeHours)
	})

	t.Run("confirmed bonus survives recalculation and edits", func(t *testing.T) {
		f := newFixture()
		seed(f, true)
		svc := f.recordService()

		_, err := svc.ConfirmContinuousWork(ctx, timeclock.ContinuousWorkRequest{RecordID: "rec-1", Confirmed: &yes})
		require.NoError(t, err)

		_, err = svc.Recalculate(ctx, timeclock.RecalculateRequest{RecalculateAll: true})
		require.NoError(t, err)
		stored, _ := f.records.GetByID(ctx, "rec-1")
		assert.True(t, stored.ContinuousWorkConfirmed)
		assert.Equal(t, 1.0, stored.OvertimeHours)

		req := editReq("rec-1")
		entry := "07:00"
		req.Entry = &entry
		res, err := svc.EditStamp(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.OvertimeHours)

		res, err = svc.ConfirmContinuousWork(ctx, timeclock.ContinuousWorkRequest{RecordID: "rec-1", Confirmed: &no})
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.OvertimeHours)
	})

	t.Run("record not flagged", func(t *testing.T) {
		f := newFixture()
		seed(f, false)
		_, err := f.recordService().ConfirmContinuousWork(ctx, timeclock.ContinuousWorkRequest{RecordID: "rec-1", Confirmed: &yes})
		assert.ErrorIs(t, err, timeclock.ErrNotContinuousWork)
	})

	t.Run("caller without employee link", func(t *testing.T) {
		f := newFixture()
		seed(f, true)
		f.authz.caller.EmployeeID = nil
		_, err := f.recordService().ConfirmContinuousWork(ctx, timeclock.ContinuousWorkRequest{RecordID: "rec-1", Confirmed: &yes})
		assert.ErrorIs(t, err, auth.ErrNoLinkedEmployee)
	})
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	res, err := f.recordService().ListEmployees(ctx)
	require.NoError(t, err)
	assert.False(t, res.IsAdmin)
	require.Len(t, res.Employees, 1)
	assert.Equal(t, "sup-a", res.Employees[0].ID)

	f.authz.admin = true
	res, err = f.recordService().ListEmployees(ctx)
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)
	assert.Len(t, res.Employees, 5)

	f.authz.err = auth.ErrUnauthenticated
	_, err = f.recordService().ListEmployees(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
