package report

import (
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/report"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/shopspring/decimal"
)

// SummarizePeriod folds records dated within [start, end] into totals. Records
// outside the range are dropped from the result as well.
func SummarizePeriod(records []timeclock.Record, start, end time.Time) report.PeriodSummary {
	worked := decimal.Zero
	overtime := decimal.Zero
	summary := report.PeriodSummary{Records: []timeclock.RecordResponse{}}

	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		worked = worked.Add(decimal.NewFromFloat(r.WorkedHours))
		overtime = overtime.Add(decimal.NewFromFloat(r.OvertimeHours))
		summary.DaysWorked++
		switch r.Status {
		case timeclock.StatusLate:
			summary.LateCount++
		case timeclock.StatusMissing:
			summary.AbsenceCount++
		}
		summary.Records = append(summary.Records, timeclock.NewRecordResponse(r))
	}

	summary.TotalHours = hours(worked)
	summary.TotalOvertimeHours = hours(overtime)
	return summary
}

func hours(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
