package report

import (
	"context"
	"testing"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/report"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecords struct {
	timeclock.RecordRepository
	records []timeclock.Record
	queries []timeclock.RecordQuery
}

func (s *stubRecords) Find(ctx context.Context, q timeclock.RecordQuery) ([]timeclock.Record, error) {
	s.queries = append(s.queries, q)
	return s.records, nil
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func rec(id, emp, day string, worked, overtime float64, status timeclock.Status) timeclock.Record {
	d := date(day)
	return timeclock.Record{
		ID:            id,
		EmployeeID:    emp,
		Date:          d,
		WorkedHours:   worked,
		OvertimeHours: overtime,
		Status:        status,
		DayType:       timecalc.DayTypeForWeekday(d),
	}
}

func TestSummarizePeriod(t *testing.T) {
	records := []timeclock.Record{
		rec("a", "op-1", "2026-10-12", 10, 0, timeclock.StatusComplete),
		rec("b", "op-1", "2026-10-13", 9.1, 0, timeclock.StatusLate),
		rec("c", "op-1", "2026-10-14", 0, 0, timeclock.StatusMissing),
		rec("d", "op-1", "2026-10-17", 12.2, 12.2, timeclock.StatusPendingApproval),
		rec("e", "op-1", "2026-09-30", 10, 0, timeclock.StatusComplete),
	}

	s := SummarizePeriod(records, date("2026-10-01"), date("2026-10-17"))
	assert.Equal(t, 31.3, s.TotalHours)
	assert.Equal(t, 12.2, s.TotalOvertimeHours)
	assert.Equal(t, 4, s.DaysWorked)
	assert.Equal(t, 1, s.LateCount)
	assert.Equal(t, 1, s.AbsenceCount)
	require.Len(t, s.Records, 4)
	assert.Equal(t, "2026-10-17", s.Records[3].Date)
}

func TestSummarizePeriodEmpty(t *testing.T) {
	s := SummarizePeriod(nil, date("2026-10-01"), date("2026-10-31"))
	assert.Zero(t, s.TotalHours)
	assert.NotNil(t, s.Records)
	assert.Empty(t, s.Records)
}

func TestMonthlyReport(t *testing.T) {
	repo := &stubRecords{records: []timeclock.Record{
		rec("a", "op-1", "2026-02-27", 9, 0, timeclock.StatusComplete),
	}}
	svc := NewReportService(repo)
	emp := "op-1"

	res, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 2, Year: 2026, EmployeeID: &emp})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", res.Period.StartDate)
	assert.Equal(t, "2026-02-28", res.Period.EndDate)
	assert.Equal(t, 9.0, res.Summary.TotalHours)
	require.Len(t, repo.queries, 1)
	assert.Equal(t, "op-1", *repo.queries[0].EmployeeID)

	_, err = svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 0, Year: 1999})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestOvertimeReportDefaultsToPending(t *testing.T) {
	repo := &stubRecords{records: []timeclock.Record{
		rec("a", "op-1", "2026-10-17", 12, 12, timeclock.StatusPendingApproval),
		rec("b", "op-2", "2026-10-16", 10.5, 1.5, timeclock.StatusPendingApproval),
	}}
	svc := NewReportService(repo)

	res, err := svc.OvertimeReport(context.Background(), report.OvertimeReportRequest{StartDate: "2026-10-01", EndDate: "2026-10-31"})
	require.NoError(t, err)
	assert.Equal(t, timeclock.StatusPendingApproval, res.Status)
	assert.Equal(t, 2, res.TotalRecords)
	assert.Equal(t, 13.5, res.TotalOvertimeHours)

	q := repo.queries[0]
	assert.True(t, q.OvertimeOnly)
	assert.Equal(t, timeclock.StatusPendingApproval, *q.Status)

	_, err = svc.OvertimeReport(context.Background(), report.OvertimeReportRequest{StartDate: "2026-10-31", EndDate: "2026-10-01"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestOvertimeSummaryPremiums(t *testing.T) {
	holiday := rec("h", "op-1", "2026-10-12", 8, 8, timeclock.StatusApproved)
	holiday.IsHoliday = true
	holiday.DayType = timecalc.DayNationalHoliday

	repo := &stubRecords{records: []timeclock.Record{
		rec("sat", "op-1", "2026-10-17", 10, 10, timeclock.StatusApproved),
		rec("sun", "op-1", "2026-10-18", 4, 4, timeclock.StatusApproved),
		rec("fri", "op-1", "2026-10-16", 10, 1, timeclock.StatusApproved),
		holiday,
	}}
	svc := NewReportService(repo)

	res, err := svc.OvertimeSummary(context.Background(), report.OvertimeSummaryRequest{EmployeeID: "op-1", Month: 10, Year: 2026})
	require.NoError(t, err)

	assert.Len(t, res.Buckets, 8)
	assert.Equal(t, report.OvertimeBucket{OvertimeHours: 10, Records: 1, Premium: 0.6, WithPremium: 16}, res.Buckets["sabado"])
	assert.Equal(t, report.OvertimeBucket{OvertimeHours: 4, Records: 1, Premium: 1, WithPremium: 8}, res.Buckets["domingo"])
	assert.Equal(t, report.OvertimeBucket{OvertimeHours: 1, Records: 1, Premium: 0, WithPremium: 1}, res.Buckets["sexta"])
	assert.Equal(t, 16.0, res.Buckets["feriado"].WithPremium)
	assert.Zero(t, res.Buckets["segunda"].Records)

	assert.Equal(t, 23.0, res.Totals.OvertimeHours)
	assert.Equal(t, 41.0, res.Totals.WithPremium)
	assert.Equal(t, "2026-10-31", res.Period.EndDate)
}

func TestRecordStatistics(t *testing.T) {
	siteA := "site-a"
	name := "João Silva"
	a := rec("a", "op-1", "2026-10-15", 10, 0, timeclock.StatusComplete)
	a.WorkSiteID, a.EmployeeName = &siteA, &name
	b := rec("b", "op-1", "2026-10-17", 12, 12, timeclock.StatusPendingApproval)
	b.WorkSiteID, b.EmployeeName = &siteA, &name
	c := rec("c", "op-2", "2026-10-16", 8, 0, timeclock.StatusComplete)

	svc := NewReportService(&stubRecords{records: []timeclock.Record{a, b, c}})
	stats, err := svc.RecordStatistics(context.Background(), report.StatisticsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 30.0, stats.TotalWorkedHours)
	assert.Equal(t, 10.0, stats.MeanWorkedHours)
	assert.Equal(t, 4.0, stats.MeanOvertimeHours)
	assert.Equal(t, 2, stats.ByStatus["Completo"].Records)
	assert.Equal(t, "João Silva", stats.ByEmployee["op-1"].Name)
	assert.Equal(t, 22.0, stats.ByEmployee["op-1"].WorkedHours)
	assert.Equal(t, 1, stats.ByWorkSite["site-a"].Employees)
	assert.Equal(t, 1, stats.ByWorkSite["sem_obra"].Records)

	bad := "??"
	_, err = svc.RecordStatistics(context.Background(), report.StatisticsRequest{Status: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
