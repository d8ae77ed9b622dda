package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gruamaster/ponto-backend-go/internal/domain/justification"
	"github.com/gruamaster/ponto-backend-go/internal/handler/http/response"
)

type JustificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)

	// Reports
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	PeriodReport(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
}

type JustificationHandlerImpl struct {
	justificationService justification.JustificationService
}

func NewJustificationHandler(justificationService justification.JustificationService) JustificationHandler {
	return &JustificationHandlerImpl{
		justificationService: justificationService,
	}
}

func (h *JustificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := justification.ListFilter{
		EmployeeID: getStringQueryParam(r, "funcionario_id"),
		StartDate:  getStringQueryParam(r, "data_inicio"),
		EndDate:    getStringQueryParam(r, "data_fim"),
		Status:     getStringQueryParam(r, "status"),
		Type:       getStringQueryParam(r, "tipo"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 50),
	}

	result, err := h.justificationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Create accepts a JSON body, or a multipart form with an optional "anexo"
// file. Multipart fields come either as a JSON document in "data" or as
// plain form values.
func (h *JustificationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req justification.CreateRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		if dataJSON := r.FormValue("data"); dataJSON != "" {
			if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
				response.BadRequest(w, "Invalid request format", nil)
				return
			}
		} else {
			req.EmployeeID = r.FormValue("funcionario_id")
			req.Date = r.FormValue("data")
			req.Type = r.FormValue("tipo")
			req.Reason = r.FormValue("motivo")
		}

		file, fileHeader, err := r.FormFile("anexo")
		if err != nil && err != http.ErrMissingFile {
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		if err == nil {
			req.File = file
			req.FileHeader = fileHeader
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.justificationService.Create(r.Context(), req)
	if err != nil {
		if req.File != nil {
			req.File.Close()
		}
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Justification created", result)
}

func (h *JustificationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.justificationService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Justification approved", result)
}

func (h *JustificationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req justification.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.justificationService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Justification rejected", result)
}

func (h *JustificationHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := justification.MonthlyReportRequest{
		Month:      getIntQueryParam(r, "mes", 0),
		Year:       getIntQueryParam(r, "ano", 0),
		EmployeeID: getStringQueryParam(r, "funcionario_id"),
		WorkSiteID: getStringQueryParam(r, "obra_id"),
		Status:     getStringQueryParam(r, "status"),
		Type:       getStringQueryParam(r, "tipo"),
	}

	result, err := h.justificationService.MonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *JustificationHandlerImpl) PeriodReport(w http.ResponseWriter, r *http.Request) {
	req := justification.PeriodReportRequest{
		StartDate:  r.URL.Query().Get("data_inicio"),
		EndDate:    r.URL.Query().Get("data_fim"),
		EmployeeID: getStringQueryParam(r, "funcionario_id"),
		WorkSiteID: getStringQueryParam(r, "obra_id"),
		Status:     getStringQueryParam(r, "status"),
		Type:       getStringQueryParam(r, "tipo"),
		GroupBy:    r.URL.Query().Get("agrupar_por"),
	}

	result, err := h.justificationService.PeriodReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *JustificationHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	req := justification.StatisticsRequest{
		Period:     r.URL.Query().Get("periodo"),
		EmployeeID: getStringQueryParam(r, "funcionario_id"),
		WorkSiteID: getStringQueryParam(r, "obra_id"),
	}

	result, err := h.justificationService.Statistics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
