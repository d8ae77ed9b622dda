package timeclock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/employee"
	"github.com/gruamaster/ponto-backend-go/internal/domain/notification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/service/file"
)

type ApprovalServiceImpl struct {
	base
}

func NewApprovalService(deps Dependencies) timeclock.ApprovalService {
	return &ApprovalServiceImpl{base: newBase(deps)}
}

// transition is one approval decision applied to a record inside a transaction.
type transition struct {
	record timeclock.Record
	event  timeclock.ApprovalEvent
}

func (s *ApprovalServiceImpl) commit(ctx context.Context, transitions ...transition) ([]timeclock.Record, error) {
	updated := make([]timeclock.Record, 0, len(transitions))
	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, t := range transitions {
			r, err := s.Records.Update(ctx, t.record)
			if err != nil {
				return err
			}
			if err := s.Events.Append(ctx, t.event); err != nil {
				return err
			}
			updated = append(updated, r)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, timeclock.ErrConcurrentModification) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save approval decision: %w", err)
	}

	for i, r := range updated {
		s.publish(ctx, r, transitions[i].event)
	}
	return updated, nil
}

// SubmitForApproval implements timeclock.ApprovalService.
func (s *ApprovalServiceImpl) SubmitForApproval(ctx context.Context, req timeclock.SubmitApprovalRequest) (timeclock.RecordResponse, error) {
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
	if record.OvertimeHours <= 0 {
		return timeclock.RecordResponse{}, timeclock.ErrNoOvertime
	}
	if record.Status.IsOverride() {
		return timeclock.RecordResponse{}, timeclock.ErrAlreadyDecided
	}

	manager, err := s.activeEmployee(ctx, req.ManagerID, timeclock.ErrManagerNotFound)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}
	worker, err := s.activeEmployee(ctx, record.EmployeeID, timeclock.ErrEmployeeInactive)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}
	if !manager.SameWorkSite(worker) {
		return timeclock.RecordResponse{}, timeclock.ErrDifferentWorkSite
	}

	now := s.now()
	record.Status = timeclock.StatusPendingApproval
	if req.Notes != nil && *req.Notes != "" {
		record.Notes = req.Notes
	}
	record.UpdatedAt = now

	event := s.newEvent(record, timeclock.EventSubmitted, caller.UserID, now)
	event.Notes = req.Notes

	updated, err := s.commit(ctx, transition{record: record, event: event})
	if err != nil {
		return timeclock.RecordResponse{}, err
	}

	s.notify(ctx, notification.CreateNotificationRequest{
		RecipientID: manager.ID,
		SenderID:    strPtr(caller.UserID),
		Type:        notification.TypeWarning,
		Title:       "Aprovação de Horas Extras",
		Message:     fmt.Sprintf("%s tem %gh extras para aprovar", worker.Name, record.OvertimeHours),
		Link:        strPtr("/pwa/aprovacoes/" + record.ID),
		Data:        map[string]interface{}{"registro_ponto_id": record.ID},
	})

	return timeclock.NewRecordResponse(updated[0]), nil
}

// Approve implements timeclock.ApprovalService.
func (s *ApprovalServiceImpl) Approve(ctx context.Context, req timeclock.ApproveRequest) (timeclock.RecordResponse, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}

	record, err := s.loadRecord(ctx, req.ID)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}
	if record.Status != timeclock.StatusPendingApproval {
		return timeclock.RecordResponse{}, timeclock.ErrNotPendingApproval
	}

	t := s.approve(record, caller.UserID, req.Notes)
	updated, err := s.commit(ctx, t)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}

	s.notifyDecision(ctx, updated[0], nil)
	return timeclock.NewRecordResponse(updated[0]), nil
}

func (s *ApprovalServiceImpl) approve(record timeclock.Record, approver string, notes *string) transition {
	now := s.now()
	record.Status = timeclock.StatusApproved
	record.ApprovedBy = &approver
	record.ApprovedAt = &now
	if notes != nil && *notes != "" {
		record.Notes = notes
	}
	record.UpdatedAt = now

	event := s.newEvent(record, timeclock.EventApproved, approver, now)
	event.Notes = notes
	return transition{record: record, event: event}
}

// ApproveWithSignature implements timeclock.ApprovalService. The signature is
// stored before the record changes; a storage failure aborts the approval.
func (s *ApprovalServiceImpl) ApproveWithSignature(ctx context.Context, req timeclock.SignatureApprovalRequest) (timeclock.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.RecordResponse{}, err
	}

	record, err := s.loadRecord(ctx, req.ID)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}
	if record.Status != timeclock.StatusPendingApproval {
		return timeclock.RecordResponse{}, timeclock.ErrNotPendingApproval
	}

	manager, err := s.activeEmployee(ctx, req.ManagerID, timeclock.ErrManagerNotFound)
	if err != nil {
		return timeclock.RecordResponse{}, err
	}

	stored, err := s.Files.UploadSignature(ctx, record.ID, manager.ID, req.Signature, s.now())
	if err != nil {
		if errors.Is(err, file.ErrInvalidImage) {
			return timeclock.RecordResponse{}, timeclock.ErrInvalidSignature
		}
		return timeclock.RecordResponse{}, fmt.Errorf("failed to store signature: %w", err)
	}

	t := s.approve(record, manager.ID, req.Notes)
	t.record.SignaturePath = &stored.Path
	t.record.SignatureDigest = &stored.Digest

	updated, err := s.commit(ctx, t)
	if err != nil {
		if delErr := s.Files.DeleteFile(ctx, stored.Path); delErr != nil {
			s.Logger.Warn("failed to remove orphaned signature", slog.String("path", stored.Path), slog.Any("error", delErr))
		}
		return timeclock.RecordResponse{}, err
	}

	s.notifyDecision(ctx, updated[0], &manager)
	return timeclock.NewRecordResponse(updated[0]), nil
}

// Reject implements timeclock.ApprovalService.
func (s *ApprovalServiceImpl) Reject(ctx context.Context, req timeclock.RejectRequest) (timeclock.RecordResponse, error) {
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
	if record.Status != timeclock.StatusPendingApproval {
		return timeclock.RecordResponse{}, timeclock.ErrNotPendingApproval
	}

	updated, err := s.commit(ctx, s.reject(record, caller.UserID, req.Reason))
	if err != nil {
		return timeclock.RecordResponse{}, err
	}

	s.notifyDecision(ctx, updated[0], nil)
	return timeclock.NewRecordResponse(updated[0]), nil
}

func (s *ApprovalServiceImpl) reject(record timeclock.Record, actor, reason string) transition {
	now := s.now()
	record.Status = timeclock.StatusRejected
	record.Notes = appendRejection(record.Notes, reason)
	record.UpdatedAt = now

	event := s.newEvent(record, timeclock.EventRejected, actor, now)
	event.Reason = &reason
	return transition{record: record, event: event}
}

// appendRejection keeps the rejection reason readable in the legacy notes column.
func appendRejection(notes *string, reason string) *string {
	line := "Motivo da rejeição: " + reason
	if notes == nil || *notes == "" {
		return &line
	}
	joined := *notes + "\n\n" + line
	return &joined
}

func (s *ApprovalServiceImpl) notifyDecision(ctx context.Context, r timeclock.Record, manager *employee.Employee) {
	date := r.Date.Format("02/01/2006")
	req := notification.CreateNotificationRequest{
		RecipientID: r.EmployeeID,
		Link:        strPtr("/dashboard/ponto"),
		Data:        map[string]interface{}{"registro_ponto_id": r.ID},
	}

	switch r.Status {
	case timeclock.StatusApproved:
		req.Type = notification.TypeSuccess
		req.Title = "Horas Extras Aprovadas"
		if manager != nil {
			req.Message = fmt.Sprintf("Suas horas extras de %s foram aprovadas por %s", date, manager.Name)
		} else {
			req.Message = fmt.Sprintf("Suas horas extras de %s foram aprovadas", date)
		}
	case timeclock.StatusRejected:
		req.Type = notification.TypeError
		req.Title = "Horas Extras Rejeitadas"
		req.Message = fmt.Sprintf("Suas horas extras de %s foram rejeitadas", date)
	default:
		return
	}
	s.notify(ctx, req)
}

// loadPending fetches ids and fails with every id that is missing or not pending.
func (s *ApprovalServiceImpl) loadPending(ctx context.Context, ids []string) ([]timeclock.Record, error) {
	ids = uniqueIDs(ids)
	records, err := s.Records.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get time records: %w", err)
	}

	byID := make(map[string]timeclock.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	var invalid []string
	ordered := make([]timeclock.Record, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok || r.Status != timeclock.StatusPendingApproval {
			invalid = append(invalid, id)
			continue
		}
		ordered = append(ordered, r)
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", timeclock.ErrNotPendingApproval, strings.Join(invalid, ", "))
	}
	return ordered, nil
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ApproveBatch implements timeclock.ApprovalService. Either every record is approved or none is.
func (s *ApprovalServiceImpl) ApproveBatch(ctx context.Context, req timeclock.BatchApproveRequest) (timeclock.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.BatchResponse{}, err
	}
	caller, err := s.caller(ctx)
	if err != nil {
		return timeclock.BatchResponse{}, err
	}

	records, err := s.loadPending(ctx, req.IDs)
	if err != nil {
		return timeclock.BatchResponse{}, err
	}

	transitions := make([]transition, 0, len(records))
	for _, r := range records {
		transitions = append(transitions, s.approve(r, caller.UserID, req.Notes))
	}
	updated, err := s.commit(ctx, transitions...)
	if err != nil {
		return timeclock.BatchResponse{}, err
	}

	for _, r := range updated {
		s.notifyDecision(ctx, r, nil)
	}
	return timeclock.BatchResponse{Processed: len(updated), Records: toRecordResponses(updated)}, nil
}

// RejectBatch implements timeclock.ApprovalService.
func (s *ApprovalServiceImpl) RejectBatch(ctx context.Context, req timeclock.BatchRejectRequest) (timeclock.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.BatchResponse{}, err
	}
	caller, err := s.caller(ctx)
	if err != nil {
		return timeclock.BatchResponse{}, err
	}

	records, err := s.loadPending(ctx, req.IDs)
	if err != nil {
		return timeclock.BatchResponse{}, err
	}

	transitions := make([]transition, 0, len(records))
	for _, r := range records {
		transitions = append(transitions, s.reject(r, caller.UserID, req.Reason))
	}
	updated, err := s.commit(ctx, transitions...)
	if err != nil {
		return timeclock.BatchResponse{}, err
	}

	for _, r := range updated {
		s.notifyDecision(ctx, r, nil)
	}
	return timeclock.BatchResponse{Processed: len(updated), Records: toRecordResponses(updated)}, nil
}

// ListPendingApprovals implements timeclock.ApprovalService.
func (s *ApprovalServiceImpl) ListPendingApprovals(ctx context.Context, managerID string) ([]timeclock.RecordResponse, error) {
	manager, err := s.activeEmployee(ctx, managerID, timeclock.ErrManagerNotFound)
	if err != nil {
		return nil, err
	}
	if manager.WorkSiteID == nil {
		return []timeclock.RecordResponse{}, nil
	}

	pending := timeclock.StatusPendingApproval
	records, err := s.Records.Find(ctx, timeclock.RecordQuery{
		Status:     &pending,
		WorkSiteID: manager.WorkSiteID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find pending approvals: %w", err)
	}
	return toRecordResponses(records), nil
}

// ListManagers implements timeclock.ApprovalService.
func (s *ApprovalServiceImpl) ListManagers(ctx context.Context, workSiteID string) ([]timeclock.ManagerResponse, error) {
	employees, err := s.Employees.ListActive(ctx, employee.ListFilter{WorkSiteID: &workSiteID})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	out := []timeclock.ManagerResponse{}
	for _, e := range employees {
		if !e.HasRole(s.Policy.ManagerRoles) {
			continue
		}
		out = append(out, timeclock.ManagerResponse{
			ID:         e.ID,
			Name:       e.Name,
			Role:       e.Role,
			WorkSiteID: e.WorkSiteID,
		})
	}
	return out, nil
}

// ListEvents implements timeclock.ApprovalService.
func (s *ApprovalServiceImpl) ListEvents(ctx context.Context, recordID string) ([]timeclock.ApprovalEventResponse, error) {
	if _, err := s.loadRecord(ctx, recordID); err != nil {
		return nil, err
	}

	events, err := s.Events.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval events: %w", err)
	}

	out := make([]timeclock.ApprovalEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, timeclock.ApprovalEventResponse{
			ID:         e.ID,
			RecordID:   e.RecordID,
			Type:       e.Type,
			Actor:      e.Actor,
			Reason:     e.Reason,
			Notes:      e.Notes,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
