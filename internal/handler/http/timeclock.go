package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/handler/http/response"
)

// TimeclockHandler serves attendance records and the overtime approval workflow.
type TimeclockHandler interface {
	// Records
	ListEmployees(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	RegisterStamp(w http.ResponseWriter, r *http.Request)
	EditStamp(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	ValidateRecords(w http.ResponseWriter, r *http.Request)

	// Continuous work
	ListPendingContinuousWork(w http.ResponseWriter, r *http.Request)
	ConfirmContinuousWork(w http.ResponseWriter, r *http.Request)

	// Approvals
	SubmitForApproval(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	ApproveWithSignature(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ApproveBatch(w http.ResponseWriter, r *http.Request)
	RejectBatch(w http.ResponseWriter, r *http.Request)
	ListPendingApprovals(w http.ResponseWriter, r *http.Request)
	ListManagers(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
}

type TimeclockHandlerImpl struct {
	recordService   timeclock.RecordService
	approvalService timeclock.ApprovalService
}

func NewTimeclockHandler(recordService timeclock.RecordService, approvalService timeclock.ApprovalService) TimeclockHandler {
	return &TimeclockHandlerImpl{
		recordService:   recordService,
		approvalService: approvalService,
	}
}

func (h *TimeclockHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	result, err := h.recordService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := timeclock.RecordFilter{
		EmployeeID:     getStringQueryParam(r, "funcionario_id"),
		StartDate:      getStringQueryParam(r, "data_inicio"),
		EndDate:        getStringQueryParam(r, "data_fim"),
		Status:         getStringQueryParam(r, "status"),
		WorkSiteID:     getStringQueryParam(r, "obra_id"),
		Role:           getStringQueryParam(r, "cargo"),
		Shift:          getStringQueryParam(r, "turno"),
		OvertimeMin:    getFloatQueryParam(r, "horas_extras_min"),
		OvertimeMax:    getFloatQueryParam(r, "horas_extras_max"),
		Search:         getStringQueryParam(r, "search"),
		OrderBy:        r.URL.Query().Get("order_by"),
		OrderDirection: r.URL.Query().Get("order_direction"),
		Page:           getIntQueryParam(r, "page", 1),
		Limit:          getIntQueryParam(r, "limit", 50),
	}

	result, err := h.recordService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.recordService.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// RegisterStamp answers 201 when the stamp opened the day's record and 200
// when it filled a stamp of an existing one.
func (h *TimeclockHandlerImpl) RegisterStamp(w http.ResponseWriter, r *http.Request) {
	var req timeclock.StampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.RegisterStamp(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Created {
		response.Created(w, "Record created", result.Record)
		return
	}
	response.SuccessWithMessage(w, "Record updated", result.Record)
}

func (h *TimeclockHandlerImpl) EditStamp(w http.ResponseWriter, r *http.Request) {
	var req timeclock.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.recordService.EditStamp(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Record updated", result)
}

func (h *TimeclockHandlerImpl) ListHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.recordService.ListHistory(r.Context(), chi.URLParam(r, "registro_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req timeclock.RecalculateRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.Recalculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) ValidateRecords(w http.ResponseWriter, r *http.Request) {
	filter := timeclock.IntegrityFilter{
		EmployeeID: getStringQueryParam(r, "funcionario_id"),
		StartDate:  getStringQueryParam(r, "data_inicio"),
		EndDate:    getStringQueryParam(r, "data_fim"),
	}

	result, err := h.recordService.ValidateRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) ListPendingContinuousWork(w http.ResponseWriter, r *http.Request) {
	result, err := h.recordService.ListPendingContinuousWork(r.Context(), r.URL.Query().Get("data"), getStringQueryParam(r, "obra_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) ConfirmContinuousWork(w http.ResponseWriter, r *http.Request) {
	var req timeclock.ContinuousWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.recordService.ConfirmContinuousWork(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) SubmitForApproval(w http.ResponseWriter, r *http.Request) {
	var req timeclock.SubmitApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.approvalService.SubmitForApproval(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Record submitted for approval", result)
}

func (h *TimeclockHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req timeclock.ApproveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.approvalService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime approved", result)
}

func (h *TimeclockHandlerImpl) ApproveWithSignature(w http.ResponseWriter, r *http.Request) {
	var req timeclock.SignatureApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.approvalService.ApproveWithSignature(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime approved with signature", result)
}

func (h *TimeclockHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req timeclock.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.approvalService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime rejected", result)
}

func (h *TimeclockHandlerImpl) ApproveBatch(w http.ResponseWriter, r *http.Request) {
	var req timeclock.BatchApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.approvalService.ApproveBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) RejectBatch(w http.ResponseWriter, r *http.Request) {
	var req timeclock.BatchRejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.approvalService.RejectBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) ListPendingApprovals(w http.ResponseWriter, r *http.Request) {
	managerID := r.URL.Query().Get("gestor_id")
	if managerID == "" {
		response.BadRequest(w, "gestor_id is required", nil)
		return
	}

	result, err := h.approvalService.ListPendingApprovals(r.Context(), managerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) ListManagers(w http.ResponseWriter, r *http.Request) {
	result, err := h.approvalService.ListManagers(r.Context(), chi.URLParam(r, "obra_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *TimeclockHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	result, err := h.approvalService.ListEvents(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
