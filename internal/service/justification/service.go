package justification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/domain/employee"
	"github.com/gruamaster/ponto-backend-go/internal/domain/justification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/notification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
	"github.com/gruamaster/ponto-backend-go/internal/service/file"
	"github.com/jackc/pgx/v5"
)

type JustificationServiceImpl struct {
	justifications justification.JustificationRepository
	employees      employee.EmployeeRepository
	authorizer     auth.Authorizer
	files          file.FileService
	notifier       notification.Service
	location       *time.Location
	clock          func() time.Time
	logger         *slog.Logger
}

func NewJustificationService(
	justifications justification.JustificationRepository,
	employees employee.EmployeeRepository,
	authorizer auth.Authorizer,
	files file.FileService,
	notifier notification.Service,
	location *time.Location,
	logger *slog.Logger,
) *JustificationServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &JustificationServiceImpl{
		justifications: justifications,
		employees:      employees,
		authorizer:     authorizer,
		files:          files,
		notifier:       notifier,
		location:       location,
		clock:          time.Now,
		logger:         logger,
	}
}

func (s *JustificationServiceImpl) now() time.Time {
	return s.clock().In(s.location)
}

func (s *JustificationServiceImpl) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// Create implements justification.JustificationService.
func (s *JustificationServiceImpl) Create(ctx context.Context, req justification.CreateRequest) (justification.JustificationResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.JustificationResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if date.After(s.today()) {
		return justification.JustificationResponse{}, justification.ErrFutureDate
	}
	typ, _ := justification.ParseType(req.Type)

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return justification.JustificationResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if err != nil || !emp.IsActive() {
		return justification.JustificationResponse{}, justification.ErrEmployeeInactive
	}

	now := s.now()
	j := justification.Justification{
		ID:           uuid.New().String(),
		EmployeeID:   emp.ID,
		Date:         date,
		Type:         typ,
		Reason:       req.Reason,
		Status:       justification.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		EmployeeName: &emp.Name,
	}

	if req.File != nil && req.FileHeader != nil {
		defer req.File.Close()
		path, err := s.files.UploadJustificationAttachment(ctx, emp.ID, req.File, req.FileHeader.Filename, now)
		if err != nil {
			return justification.JustificationResponse{}, fmt.Errorf("failed to upload attachment: %w", err)
		}
		j.AttachmentPath = &path
	}

	created, err := s.justifications.Create(ctx, j)
	if err != nil {
		if j.AttachmentPath != nil {
			if delErr := s.files.DeleteFile(ctx, *j.AttachmentPath); delErr != nil {
				s.logger.Warn("failed to remove orphaned attachment", slog.String("path", *j.AttachmentPath), slog.Any("error", delErr))
			}
		}
		return justification.JustificationResponse{}, fmt.Errorf("failed to create justification: %w", err)
	}

	return toResponse(created), nil
}

// Approve implements justification.JustificationService.
func (s *JustificationServiceImpl) Approve(ctx context.Context, id string) (justification.JustificationResponse, error) {
	return s.decide(ctx, id, func(j *justification.Justification) {
		j.Status = justification.StatusApproved
	})
}

// Reject implements justification.JustificationService. The rejection reason
// is appended to the employee's original reason.
func (s *JustificationServiceImpl) Reject(ctx context.Context, req justification.RejectRequest) (justification.JustificationResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.JustificationResponse{}, err
	}
	return s.decide(ctx, req.ID, func(j *justification.Justification) {
		j.Status = justification.StatusRejected
		j.Reason = justification.RejectionNote(j.Reason, req.Reason)
	})
}

func (s *JustificationServiceImpl) decide(ctx context.Context, id string, apply func(*justification.Justification)) (justification.JustificationResponse, error) {
	caller, err := s.authorizer.Caller(ctx)
	if err != nil {
		return justification.JustificationResponse{}, err
	}

	j, err := s.justifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return justification.JustificationResponse{}, justification.ErrJustificationNotFound
		}
		return justification.JustificationResponse{}, fmt.Errorf("failed to get justification: %w", err)
	}
	if j.Status != justification.StatusPending {
		return justification.JustificationResponse{}, justification.ErrAlreadyProcessed
	}

	now := s.now()
	apply(&j)
	j.ApprovedBy = &caller.UserID
	j.ApprovedAt = &now
	j.UpdatedAt = now

	updated, err := s.justifications.UpdateDecision(ctx, j)
	if err != nil {
		if errors.Is(err, justification.ErrAlreadyProcessed) {
			return justification.JustificationResponse{}, err
		}
		return justification.JustificationResponse{}, fmt.Errorf("failed to update justification: %w", err)
	}

	s.notifyDecision(ctx, updated)
	return toResponse(updated), nil
}

func (s *JustificationServiceImpl) notifyDecision(ctx context.Context, j justification.Justification) {
	if s.notifier == nil {
		return
	}
	req := notification.CreateNotificationRequest{
		RecipientID: j.EmployeeID,
		Type:        notification.TypeSuccess,
		Title:       "Justificativa Aprovada",
		Message:     fmt.Sprintf("Sua justificativa de %s (%s) foi aprovada", j.Date.Format("02/01/2006"), j.Type),
		Data:        map[string]interface{}{"justificativa_id": j.ID},
	}
	if j.Status == justification.StatusRejected {
		req.Type = notification.TypeError
		req.Title = "Justificativa Rejeitada"
		req.Message = fmt.Sprintf("Sua justificativa de %s (%s) foi rejeitada", j.Date.Format("02/01/2006"), j.Type)
	}
	if err := s.notifier.QueueNotification(ctx, req); err != nil {
		s.logger.Warn("failed to queue notification", slog.String("justification_id", j.ID), slog.Any("error", err))
	}
}

// List implements justification.JustificationService.
func (s *JustificationServiceImpl) List(ctx context.Context, filter justification.ListFilter) (justification.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return justification.ListResponse{}, err
	}

	items, total, err := s.justifications.List(ctx, filter)
	if err != nil {
		return justification.ListResponse{}, fmt.Errorf("failed to list justifications: %w", err)
	}

	return justification.ListResponse{
		TotalCount:     total,
		Page:           filter.Page,
		Limit:          filter.Limit,
		TotalPages:     int(math.Ceil(float64(total) / float64(filter.Limit))),
		Showing:        timeclock.ShowingRange(filter.Page, filter.Limit, len(items), total),
		Justifications: toResponses(items),
	}, nil
}

// MonthlyReport implements justification.JustificationService.
func (s *JustificationServiceImpl) MonthlyReport(ctx context.Context, req justification.MonthlyReportRequest) (justification.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return justification.MonthlyReport{}, err
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	q := buildQuery(req.EmployeeID, req.WorkSiteID, req.Status, req.Type, start, end)

	current, err := s.justifications.Find(ctx, q)
	if err != nil {
		return justification.MonthlyReport{}, fmt.Errorf("failed to find justifications: %w", err)
	}

	q.StartDate = start.AddDate(0, -1, 0)
	q.EndDate = start.AddDate(0, 0, -1)
	previous, err := s.justifications.Find(ctx, q)
	if err != nil {
		return justification.MonthlyReport{}, fmt.Errorf("failed to find previous month justifications: %w", err)
	}

	return justification.MonthlyReport{
		Period: justification.MonthlyPeriod{
			Month:     req.Month,
			Year:      req.Year,
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		},
		Summary:        summarize(current),
		Trend:          ComputeTrend(len(current), len(previous)),
		Justifications: toResponses(current),
	}, nil
}

// PeriodReport implements justification.JustificationService.
func (s *JustificationServiceImpl) PeriodReport(ctx context.Context, req justification.PeriodReportRequest) (justification.PeriodReport, error) {
	if err := req.Validate(); err != nil {
		return justification.PeriodReport{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	items, err := s.justifications.Find(ctx, buildQuery(req.EmployeeID, req.WorkSiteID, req.Status, req.Type, start, end))
	if err != nil {
		return justification.PeriodReport{}, fmt.Errorf("failed to find justifications: %w", err)
	}

	businessDays := BusinessDays(start, end)
	return justification.PeriodReport{
		Period: justification.DateRange{
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			BusinessDays: businessDays,
		},
		Total:           len(items),
		DailyMean:       dailyMean(len(items), businessDays),
		ByStatus:        CountByStatus(items),
		ByType:          CountByType(items),
		ApprovalRate:    ApprovalRate(items),
		UniqueEmployees: uniqueEmployees(items),
		GroupBy:         req.GroupBy,
		Groups:          GroupBy(items, req.GroupBy),
	}, nil
}

// Statistics implements justification.JustificationService.
func (s *JustificationServiceImpl) Statistics(ctx context.Context, req justification.StatisticsRequest) (justification.Statistics, error) {
	if err := req.Validate(); err != nil {
		return justification.Statistics{}, err
	}

	end := s.today()
	var start time.Time
	switch req.Period {
	case justification.PeriodLastThreeMonths:
		start = end.AddDate(0, -3, 0)
	case justification.PeriodLastYear:
		start = end.AddDate(-1, 0, 0)
	default:
		start = end.AddDate(0, -1, 0)
	}

	items, err := s.justifications.Find(ctx, buildQuery(req.EmployeeID, req.WorkSiteID, nil, nil, start, end))
	if err != nil {
		return justification.Statistics{}, fmt.Errorf("failed to find justifications: %w", err)
	}

	return justification.Statistics{
		Period: justification.DateRange{
			StartDate:    start.Format("2006-01-02"),
			EndDate:      end.Format("2006-01-02"),
			BusinessDays: BusinessDays(start, end),
		},
		Total:           len(items),
		ByStatus:        CountByStatus(items),
		ByType:          CountByType(items),
		ByWeekday:       CountByWeekday(items),
		ByISOWeek:       CountByISOWeek(items),
		TopEmployee:     TopEmployee(items),
		ApprovalRate:    ApprovalRate(items),
		ApprovalLatency: MeanApprovalLatency(items),
	}, nil
}

func summarize(items []justification.Justification) justification.Summary {
	return justification.Summary{
		Total:       len(items),
		ByStatus:    CountByStatus(items),
		ByType:      CountByType(items),
		ByWeekday:   CountByWeekday(items),
		ByEmployee:  PerEmployee(items),
		TopEmployee: TopEmployee(items),
	}
}

// buildQuery assumes status and typ were already validated.
func buildQuery(employeeID, workSiteID, status, typ *string, start, end time.Time) justification.Query {
	q := justification.Query{
		EmployeeID: employeeID,
		WorkSiteID: workSiteID,
		StartDate:  start,
		EndDate:    end,
	}
	if status != nil {
		st, _ := justification.ParseStatus(*status)
		q.Status = &st
	}
	if typ != nil {
		t, _ := justification.ParseType(*typ)
		q.Type = &t
	}
	return q
}

func toResponse(j justification.Justification) justification.JustificationResponse {
	var approvedAt *string
	if j.ApprovedAt != nil {
		v := j.ApprovedAt.Format(time.RFC3339)
		approvedAt = &v
	}
	return justification.JustificationResponse{
		ID:             j.ID,
		EmployeeID:     j.EmployeeID,
		EmployeeName:   j.EmployeeName,
		Date:           j.Date.Format("2006-01-02"),
		Type:           j.Type,
		Reason:         j.Reason,
		Status:         j.Status,
		ApprovedBy:     j.ApprovedBy,
		ApprovedAt:     approvedAt,
		AttachmentPath: j.AttachmentPath,
		CreatedAt:      j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      j.UpdatedAt.Format(time.RFC3339),
	}
}

func toResponses(items []justification.Justification) []justification.JustificationResponse {
	out := make([]justification.JustificationResponse, 0, len(items))
	for _, j := range items {
		out = append(out, toResponse(j))
	}
	return out
}
