package report

import "context"

// ReportService aggregates stored time records. It never mutates them.
type ReportService interface {
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
	OvertimeReport(ctx context.Context, req OvertimeReportRequest) (OvertimeReport, error)
	OvertimeSummary(ctx context.Context, req OvertimeSummaryRequest) (OvertimeSummary, error)
	RecordStatistics(ctx context.Context, req StatisticsRequest) (RecordStatistics, error)
}
