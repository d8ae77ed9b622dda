package timeclock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/config"
	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/domain/employee"
	"github.com/gruamaster/ponto-backend-go/internal/domain/holiday"
	"github.com/gruamaster/ponto-backend-go/internal/domain/notification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/queue"
	"github.com/gruamaster/ponto-backend-go/internal/service/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Dependencies wires the record and approval services.
type Dependencies struct {
	Records    timeclock.RecordRepository
	History    timeclock.AlterationRepository
	Events     timeclock.ApprovalEventRepository
	Employees  employee.EmployeeRepository
	Holidays   holiday.HolidayRepository
	Tx         timeclock.Transactor
	Authorizer auth.Authorizer
	Notifier   notification.Service
	Publisher  queue.Publisher
	Files      file.FileService
	Policy     *config.Policy
	Location   *time.Location
	Clock      func() time.Time
	Logger     *slog.Logger
}

// base holds what both services share.
type base struct {
	Dependencies
	calc Calculator
}

func newBase(deps Dependencies) base {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Publisher == nil {
		deps.Publisher = queue.NopPublisher{}
	}
	return base{Dependencies: deps, calc: NewCalculator(deps.Policy)}
}

func (b *base) newEvent(r timeclock.Record, t timeclock.EventType, actor string, at time.Time) timeclock.ApprovalEvent {
	return timeclock.ApprovalEvent{
		ID:         uuid.New().String(),
		RecordID:   r.ID,
		Type:       t,
		Actor:      actor,
		OccurredAt: at,
	}
}

func (b *base) now() time.Time {
	return b.Clock().In(b.Location)
}

// today is the current calendar date in the configured timezone, as UTC midnight.
func (b *base) today() time.Time {
	n := b.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (b *base) caller(ctx context.Context) (auth.Caller, error) {
	c, err := b.Authorizer.Caller(ctx)
	if err != nil {
		return auth.Caller{}, err
	}
	return c, nil
}

// callerIsAdmin asks the authorizer about the caller's own identity.
func (b *base) callerIsAdmin(ctx context.Context) bool {
	c, err := b.Authorizer.Caller(ctx)
	if err != nil {
		return false
	}
	id := c.UserID
	if c.EmployeeID != nil {
		id = *c.EmployeeID
	}
	return b.Authorizer.IsAdmin(ctx, id)
}

func (b *base) loadRecord(ctx context.Context, id string) (timeclock.Record, error) {
	r, err := b.Records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeclock.Record{}, timeclock.ErrRecordNotFound
		}
		return timeclock.Record{}, fmt.Errorf("failed to get time record: %w", err)
	}
	return r, nil
}

// activeEmployee resolves id to an active employee or returns notFound.
func (b *base) activeEmployee(ctx context.Context, id string, notFound error) (employee.Employee, error) {
	e, err := b.Employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, notFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !e.IsActive() {
		return employee.Employee{}, notFound
	}
	return e, nil
}

// notify queues a notification. Failures are logged and never returned.
func (b *base) notify(ctx context.Context, req notification.CreateNotificationRequest) {
	if b.Notifier == nil {
		return
	}
	if err := b.Notifier.QueueNotification(ctx, req); err != nil {
		b.Logger.Warn("failed to queue notification",
			slog.String("recipient_id", req.RecipientID),
			slog.String("title", req.Title),
			slog.Any("error", err),
		)
	}
}

// publish sends an approval event downstream. Failures are logged and never returned.
func (b *base) publish(ctx context.Context, r timeclock.Record, ev timeclock.ApprovalEvent) {
	err := b.Publisher.Publish(ctx, queue.Event{
		Type:       "ponto.overtime." + string(ev.Type),
		Key:        r.ID,
		OccurredAt: ev.OccurredAt,
		Payload: map[string]interface{}{
			"registro_ponto_id": r.ID,
			"funcionario_id":    r.EmployeeID,
			"data":              r.Date.Format("2006-01-02"),
			"horas_extras":      r.OvertimeHours,
			"status":            r.Status,
			"ator":              ev.Actor,
			"motivo":            ev.Reason,
		},
	})
	if err != nil {
		b.Logger.Warn("failed to publish approval event",
			slog.String("record_id", r.ID),
			slog.String("event", string(ev.Type)),
			slog.Any("error", err),
		)
	}
}

func toRecordResponses(records []timeclock.Record) []timeclock.RecordResponse {
	out := make([]timeclock.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, timeclock.NewRecordResponse(r))
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
