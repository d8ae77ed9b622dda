package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/report"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	bucketHoliday = "feriado"
	noWorkSite    = "sem_obra"
)

var weekdayBuckets = [...]string{"domingo", "segunda", "terca", "quarta", "quinta", "sexta", "sabado"}

type ReportServiceImpl struct {
	records timeclock.RecordRepository
}

func NewReportService(records timeclock.RecordRepository) *ReportServiceImpl {
	return &ReportServiceImpl{records: records}
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	start, end := req.Bounds()
	records, err := s.records.Find(ctx, timeclock.RecordQuery{
		EmployeeID: req.EmployeeID,
		StartDate:  &start,
		EndDate:    &end,
	})
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to find records: %w", err)
	}

	return report.MonthlyReport{
		Period:     monthPeriod(req.Month, req.Year, start, end),
		EmployeeID: req.EmployeeID,
		Summary:    SummarizePeriod(records, start, end),
	}, nil
}

// OvertimeReport implements report.ReportService. Without a status filter only
// records awaiting approval are listed.
func (s *ReportServiceImpl) OvertimeReport(ctx context.Context, req report.OvertimeReportRequest) (report.OvertimeReport, error) {
	if err := req.Validate(); err != nil {
		return report.OvertimeReport{}, err
	}

	status := timeclock.StatusPendingApproval
	if req.Status != nil {
		status, _ = timeclock.ParseStatus(*req.Status)
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	records, err := s.records.Find(ctx, timeclock.RecordQuery{
		StartDate:    &start,
		EndDate:      &end,
		Status:       &status,
		OvertimeOnly: true,
	})
	if err != nil {
		return report.OvertimeReport{}, fmt.Errorf("failed to find records: %w", err)
	}

	total := decimal.Zero
	out := make([]timeclock.RecordResponse, 0, len(records))
	for _, r := range records {
		if r.OvertimeHours <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromFloat(r.OvertimeHours))
		out = append(out, timeclock.NewRecordResponse(r))
	}

	return report.OvertimeReport{
		Period:             report.Period{StartDate: req.StartDate, EndDate: req.EndDate},
		Status:             status,
		TotalRecords:       len(out),
		TotalOvertimeHours: hours(total),
		Records:            out,
	}, nil
}

// OvertimeSummary implements report.ReportService.
func (s *ReportServiceImpl) OvertimeSummary(ctx context.Context, req report.OvertimeSummaryRequest) (report.OvertimeSummary, error) {
	if err := req.Validate(); err != nil {
		return report.OvertimeSummary{}, err
	}

	start, end := report.MonthBounds(req.Year, req.Month)
	records, err := s.records.Find(ctx, timeclock.RecordQuery{
		EmployeeID:   &req.EmployeeID,
		StartDate:    &start,
		EndDate:      &end,
		OvertimeOnly: true,
	})
	if err != nil {
		return report.OvertimeSummary{}, fmt.Errorf("failed to find records: %w", err)
	}

	buckets, totals := overtimeBuckets(records)
	return report.OvertimeSummary{
		Buckets: buckets,
		Totals:  totals,
		Period:  monthPeriod(req.Month, req.Year, start, end),
	}, nil
}

// RecordStatistics implements report.ReportService.
func (s *ReportServiceImpl) RecordStatistics(ctx context.Context, req report.StatisticsRequest) (report.RecordStatistics, error) {
	if err := req.Validate(); err != nil {
		return report.RecordStatistics{}, err
	}

	q := timeclock.RecordQuery{EmployeeID: req.EmployeeID, WorkSiteID: req.WorkSiteID}
	if req.StartDate != nil {
		d, _ := validator.IsValidDate(*req.StartDate)
		q.StartDate = &d
	}
	if req.EndDate != nil {
		d, _ := validator.IsValidDate(*req.EndDate)
		q.EndDate = &d
	}
	if req.Status != nil {
		st, _ := timeclock.ParseStatus(*req.Status)
		q.Status = &st
	}

	records, err := s.records.Find(ctx, q)
	if err != nil {
		return report.RecordStatistics{}, fmt.Errorf("failed to find records: %w", err)
	}
	return Statistics(records), nil
}

// Statistics totals records overall and per status, employee and work site.
func Statistics(records []timeclock.Record) report.RecordStatistics {
	byStatus := map[string]*groupAcc{}
	byEmployee := map[string]*groupAcc{}
	bySite := map[string]*groupAcc{}
	var all groupAcc

	for _, r := range records {
		all.add(r)
		acc(byStatus, string(r.Status)).add(r)

		emp := acc(byEmployee, r.EmployeeID)
		emp.add(r)
		if r.EmployeeName != nil {
			emp.name = *r.EmployeeName
		}

		site := noWorkSite
		if r.WorkSiteID != nil {
			site = *r.WorkSiteID
		}
		ws := acc(bySite, site)
		ws.add(r)
		ws.employees[r.EmployeeID] = struct{}{}
	}

	stats := report.RecordStatistics{
		TotalRecords:       all.records,
		TotalWorkedHours:   hours(all.worked),
		TotalOvertimeHours: hours(all.overtime),
		ByStatus:           flatten(byStatus, false),
		ByEmployee:         flatten(byEmployee, false),
		ByWorkSite:         flatten(bySite, true),
	}
	if all.records > 0 {
		n := decimal.NewFromInt(int64(all.records))
		stats.MeanWorkedHours = hours(all.worked.Div(n))
		stats.MeanOvertimeHours = hours(all.overtime.Div(n))
	}
	return stats
}

type groupAcc struct {
	records   int
	worked    decimal.Decimal
	overtime  decimal.Decimal
	name      string
	employees map[string]struct{}
}

func acc(m map[string]*groupAcc, key string) *groupAcc {
	g, ok := m[key]
	if !ok {
		g = &groupAcc{employees: map[string]struct{}{}}
		m[key] = g
	}
	return g
}

func (g *groupAcc) add(r timeclock.Record) {
	g.records++
	g.worked = g.worked.Add(decimal.NewFromFloat(r.WorkedHours))
	g.overtime = g.overtime.Add(decimal.NewFromFloat(r.OvertimeHours))
}

func flatten(m map[string]*groupAcc, withEmployees bool) map[string]report.GroupTotals {
	out := make(map[string]report.GroupTotals, len(m))
	for k, g := range m {
		t := report.GroupTotals{
			Records:       g.records,
			WorkedHours:   hours(g.worked),
			OvertimeHours: hours(g.overtime),
			Name:          g.name,
		}
		if withEmployees {
			t.Employees = len(g.employees)
		}
		out[k] = t
	}
	return out
}

// overtimeBuckets splits overtime by weekday, with holidays in their own
// bucket regardless of weekday. Every bucket is present even when empty.
func overtimeBuckets(records []timeclock.Record) (map[string]report.OvertimeBucket, report.OvertimeTotals) {
	type bucket struct {
		hours   decimal.Decimal
		records int
		premium float64
	}
	buckets := make(map[string]*bucket, len(weekdayBuckets)+1)
	for i, name := range weekdayBuckets {
		buckets[name] = &bucket{premium: timecalc.DayTypeForWeekday(sundayPlus(i)).Premium()}
	}
	buckets[bucketHoliday] = &bucket{premium: timecalc.DayNationalHoliday.Premium()}

	for _, r := range records {
		if r.OvertimeHours <= 0 {
			continue
		}
		key := weekdayBuckets[r.Date.Weekday()]
		if r.IsHoliday || r.DayType.IsHoliday() {
			key = bucketHoliday
		}
		b := buckets[key]
		b.hours = b.hours.Add(decimal.NewFromFloat(r.OvertimeHours))
		b.records++
	}

	out := make(map[string]report.OvertimeBucket, len(buckets))
	totalHours := decimal.Zero
	totalWithPremium := decimal.Zero
	for name, b := range buckets {
		withPremium := b.hours.Mul(decimal.NewFromFloat(1 + b.premium))
		totalHours = totalHours.Add(b.hours)
		totalWithPremium = totalWithPremium.Add(withPremium)
		out[name] = report.OvertimeBucket{
			OvertimeHours: hours(b.hours),
			Records:       b.records,
			Premium:       b.premium,
			WithPremium:   hours(withPremium),
		}
	}
	return out, report.OvertimeTotals{
		OvertimeHours: hours(totalHours),
		WithPremium:   hours(totalWithPremium),
	}
}

// sundayPlus returns a fixed date falling on weekday i (0 = Sunday).
func sundayPlus(i int) time.Time {
	return time.Date(2024, 1, 7+i, 0, 0, 0, 0, time.UTC)
}

func monthPeriod(month, year int, start, end time.Time) report.Period {
	return report.Period{
		Month:     month,
		Year:      year,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
	}
}
