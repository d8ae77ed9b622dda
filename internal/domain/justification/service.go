package justification

import "context"

type JustificationService interface {
	Create(ctx context.Context, req CreateRequest) (JustificationResponse, error)
	Approve(ctx context.Context, id string) (JustificationResponse, error)
	Reject(ctx context.Context, req RejectRequest) (JustificationResponse, error)
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
	PeriodReport(ctx context.Context, req PeriodReportRequest) (PeriodReport, error)
	Statistics(ctx context.Context, req StatisticsRequest) (Statistics, error)
}
