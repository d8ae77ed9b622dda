package http

import (
	"net/http"
	"strconv"

	"github.com/gruamaster/ponto-backend-go/internal/domain/report"
	"github.com/gruamaster/ponto-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	OvertimeReport(w http.ResponseWriter, r *http.Request)
	OvertimeSummary(w http.ResponseWriter, r *http.Request)
	RecordStatistics(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// parseMonthYear reads the mes/ano query pair shared by the monthly endpoints.
func parseMonthYear(r *http.Request) (month, year int, ok bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("mes"))
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(r.URL.Query().Get("ano"))
	if err != nil {
		return 0, 0, false
	}
	return month, year, true
}

// MonthlyReport handles GET /relatorios/mensal
func (h *reportHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parseMonthYear(r)
	if !ok {
		response.BadRequest(w, "invalid mes or ano parameter", nil)
		return
	}

	result, err := h.reportService.MonthlyReport(r.Context(), report.MonthlyReportRequest{
		Month:      month,
		Year:       year,
		EmployeeID: getStringQueryParam(r, "funcionario_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// OvertimeReport handles GET /relatorios/horas-extras
func (h *reportHandlerImpl) OvertimeReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.OvertimeReport(r.Context(), report.OvertimeReportRequest{
		StartDate: r.URL.Query().Get("data_inicio"),
		EndDate:   r.URL.Query().Get("data_fim"),
		Status:    getStringQueryParam(r, "status"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// OvertimeSummary handles GET /resumo-horas-extras
func (h *reportHandlerImpl) OvertimeSummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parseMonthYear(r)
	if !ok {
		response.BadRequest(w, "invalid mes or ano parameter", nil)
		return
	}

	result, err := h.reportService.OvertimeSummary(r.Context(), report.OvertimeSummaryRequest{
		EmployeeID: r.URL.Query().Get("funcionario_id"),
		Month:      month,
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// RecordStatistics handles GET /registros/estatisticas
func (h *reportHandlerImpl) RecordStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.RecordStatistics(r.Context(), report.StatisticsRequest{
		EmployeeID: getStringQueryParam(r, "funcionario_id"),
		WorkSiteID: getStringQueryParam(r, "obra_id"),
		StartDate:  getStringQueryParam(r, "data_inicio"),
		EndDate:    getStringQueryParam(r, "data_fim"),
		Status:     getStringQueryParam(r, "status"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
