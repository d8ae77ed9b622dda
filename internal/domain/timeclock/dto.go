package timeclock

import (
	"fmt"
	"strings"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
)

// ========================================
// STAMP DTOs
// ========================================

// StampRequest registers one or more stamps for an employee's day.
type StampRequest struct {
	EmployeeID     string   `json:"funcionario_id"`
	Date           string   `json:"data"`
	Entry          *string  `json:"entrada,omitempty"`
	LunchOut       *string  `json:"saida_almoco,omitempty"`
	LunchIn        *string  `json:"volta_almoco,omitempty"`
	Exit           *string  `json:"saida,omitempty"`
	Notes          *string  `json:"observacoes,omitempty"`
	Location       *string  `json:"localizacao,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	DayType        *string  `json:"tipo_dia,omitempty"`
	ContinuousWork *bool    `json:"trabalho_corrido,omitempty"`
}

func (r *StampRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "funcionario_id",
			Message: "funcionario_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "data",
			Message: "data is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "data",
			Message: "data must be in YYYY-MM-DD format",
		})
	}

	r.Entry = normalizeStamp(r.Entry)
	r.LunchOut = normalizeStamp(r.LunchOut)
	r.LunchIn = normalizeStamp(r.LunchIn)
	r.Exit = normalizeStamp(r.Exit)
	errs = append(errs, validateStamps(r.Entry, r.LunchOut, r.LunchIn, r.Exit)...)

	if r.DayType != nil {
		if _, err := timecalc.ParseDayType(*r.DayType); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "tipo_dia",
				Message: "tipo_dia must be one of normal, sabado, domingo, feriado_nacional, feriado_estadual, feriado_local",
			})
		}
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HasStamp reports whether at least one stamp or note is being registered.
func (r *StampRequest) HasStamp() bool {
	return r.Entry != nil || r.LunchOut != nil || r.LunchIn != nil || r.Exit != nil
}

// EditRequest corrects an existing record. Every change needs a justification.
type EditRequest struct {
	ID            string  `json:"-"`
	Entry         *string `json:"entrada,omitempty"`
	LunchOut      *string `json:"saida_almoco,omitempty"`
	LunchIn       *string `json:"volta_almoco,omitempty"`
	Exit          *string `json:"saida,omitempty"`
	Notes         *string `json:"observacoes,omitempty"`
	Location      *string `json:"localizacao,omitempty"`
	Status        *string `json:"status,omitempty"`
	Justification string  `json:"justificativa_alteracao"`
}

func (r *EditRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	r.Entry = normalizeStamp(r.Entry)
	r.LunchOut = normalizeStamp(r.LunchOut)
	r.LunchIn = normalizeStamp(r.LunchIn)
	r.Exit = normalizeStamp(r.Exit)
	errs = append(errs, validateStamps(r.Entry, r.LunchOut, r.LunchIn, r.Exit)...)

	if len(errs) > 0 {
		return errs
	}
	if validator.IsEmpty(r.Justification) {
		return ErrJustificationRequired
	}
	return nil
}

func normalizeStamp(s *string) *string {
	if s == nil {
		return nil
	}
	n := timecalc.NormalizeClock(*s)
	return &n
}

func validateStamps(entry, lunchOut, lunchIn, exit *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	fields := []struct {
		name  string
		value *string
	}{
		{FieldEntry, entry},
		{FieldLunchOut, lunchOut},
		{FieldLunchIn, lunchIn},
		{FieldExit, exit},
	}
	for _, f := range fields {
		if f.value != nil && !timecalc.IsValidClock(*f.value) {
			errs = append(errs, validator.ValidationError{
				Field:   f.name,
				Message: f.name + " must be in HH:MM format",
			})
		}
	}
	return errs
}

// StampResult tells the transport whether the stamp created the day's record.
type StampResult struct {
	Record  RecordResponse `json:"registro"`
	Created bool           `json:"criado"`
}

// ========================================
// APPROVAL DTOs
// ========================================

type SubmitApprovalRequest struct {
	ID        string  `json:"-"`
	ManagerID string  `json:"gestor_id"`
	Notes     *string `json:"observacoes,omitempty"`
}

func (r *SubmitApprovalRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "gestor_id",
			Message: "gestor_id is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveRequest struct {
	ID    string  `json:"-"`
	Notes *string `json:"observacoes_aprovacao,omitempty"`
}

type SignatureApprovalRequest struct {
	ID        string  `json:"-"`
	ManagerID string  `json:"gestor_id"`
	Signature string  `json:"assinatura_digital"`
	Notes     *string `json:"observacoes,omitempty"`
}

func (r *SignatureApprovalRequest) Validate() error {
	if validator.IsEmpty(r.ManagerID) {
		return validator.ValidationErrors{{
			Field:   "gestor_id",
			Message: "gestor_id is required",
		}}
	}
	if validator.IsEmpty(r.Signature) {
		return ErrSignatureRequired
	}
	return nil
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"motivo_rejeicao"`
}

func (r *RejectRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return ErrReasonRequired
	}
	return nil
}

type BatchApproveRequest struct {
	IDs   []string `json:"registro_ids"`
	Notes *string  `json:"observacoes,omitempty"`
}

func (r *BatchApproveRequest) Validate() error {
	if len(r.IDs) == 0 {
		return validator.ValidationErrors{{
			Field:   "registro_ids",
			Message: "registro_ids must contain at least one id",
		}}
	}
	return nil
}

type BatchRejectRequest struct {
	IDs    []string `json:"registro_ids"`
	Reason string   `json:"motivo"`
}

func (r *BatchRejectRequest) Validate() error {
	if len(r.IDs) == 0 {
		return validator.ValidationErrors{{
			Field:   "registro_ids",
			Message: "registro_ids must contain at least one id",
		}}
	}
	if validator.IsEmpty(r.Reason) {
		return ErrReasonRequired
	}
	return nil
}

type BatchResponse struct {
	Processed int              `json:"processados"`
	Records   []RecordResponse `json:"registros"`
}

// ========================================
// MAINTENANCE DTOs
// ========================================

type RecalculateRequest struct {
	EmployeeID     *string `json:"funcionario_id,omitempty"`
	StartDate      *string `json:"data_inicio,omitempty"`
	EndDate        *string `json:"data_fim,omitempty"`
	RecalculateAll bool    `json:"recalcular_todos"`
}

func (r *RecalculateRequest) Validate() error {
	return validateRange(r.StartDate, r.EndDate)
}

type RecalculateError struct {
	RecordID string `json:"registro_id"`
	Error    string `json:"erro"`
}

type RecalculateResponse struct {
	Total   int                `json:"total"`
	Updated int                `json:"atualizados"`
	Errors  []RecalculateError `json:"erros"`
}

type IntegrityFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
}

func (f *IntegrityFilter) Validate() error {
	return validateRange(f.StartDate, f.EndDate)
}

type IntegrityStats struct {
	Total           int `json:"total"`
	WithProblems    int `json:"com_problemas"`
	MissingEntry    int `json:"sem_entrada"`
	MissingExit     int `json:"sem_saida"`
	ZeroHours       int `json:"horas_zeradas"`
	MissingStatus   int `json:"status_inconsistente"`
	EntryEqualsExit int `json:"horarios_iguais"`
}

type IntegrityProblem struct {
	RecordID     string   `json:"id"`
	EmployeeName string   `json:"funcionario"`
	Date         string   `json:"data"`
	Problems     []string `json:"problemas"`
}

type IntegrityReport struct {
	Stats         IntegrityStats     `json:"estatisticas"`
	Problems      []IntegrityProblem `json:"problemas"`
	TotalProblems int                `json:"total_problemas"`
}

type ContinuousWorkRequest struct {
	RecordID  string  `json:"registro_ponto_id"`
	Confirmed *bool   `json:"confirmado"`
	Notes     *string `json:"observacoes,omitempty"`
}

func (r *ContinuousWorkRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RecordID) {
		errs = append(errs, validator.ValidationError{Field: "registro_ponto_id", Message: "registro_ponto_id is required"})
	}
	if r.Confirmed == nil {
		errs = append(errs, validator.ValidationError{Field: "confirmado", Message: "confirmado is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// QUERY DTOs
// ========================================

var recordOrderFields = map[string]string{
	"data":              "r.date",
	"funcionario":       "e.name",
	"horas_trabalhadas": "r.worked_hours",
	"horas_extras":      "r.overtime_hours",
	"status":            "r.status",
	"created_at":        "r.created_at",
}

// OrderColumn maps a public order field to its SQL column.
func OrderColumn(field string) (string, bool) {
	col, ok := recordOrderFields[field]
	return col, ok
}

type RecordFilter struct {
	EmployeeID     *string
	StartDate      *string
	EndDate        *string
	Status         *string
	WorkSiteID     *string
	Role           *string
	Shift          *string
	OvertimeMin    *float64
	OvertimeMax    *float64
	Search         *string
	OrderBy        string
	OrderDirection string
	Page           int
	Limit          int
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.OrderBy == "" {
		f.OrderBy = "data"
	}
	if f.OrderDirection == "" {
		f.OrderDirection = "desc"
	}

	if _, ok := recordOrderFields[f.OrderBy]; !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "order_by",
			Message: "order_by must be one of data, funcionario, horas_trabalhadas, horas_extras, status, created_at",
		})
	}
	f.OrderDirection = strings.ToLower(f.OrderDirection)
	if f.OrderDirection != "asc" && f.OrderDirection != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "order_direction",
			Message: "order_direction must be asc or desc",
		})
	}
	if f.Search != nil && len([]rune(strings.TrimSpace(*f.Search))) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "search",
			Message: "search must have at least 3 characters",
		})
	}
	if f.OvertimeMin != nil && *f.OvertimeMin < 0 {
		errs = append(errs, validator.ValidationError{Field: "horas_extras_min", Message: "horas_extras_min must be a positive number"})
	}
	if f.OvertimeMax != nil && *f.OvertimeMax < 0 {
		errs = append(errs, validator.ValidationError{Field: "horas_extras_max", Message: "horas_extras_max must be a positive number"})
	}
	if f.OvertimeMin != nil && f.OvertimeMax != nil && *f.OvertimeMin > *f.OvertimeMax {
		errs = append(errs, validator.ValidationError{Field: "horas_extras_min", Message: "horas_extras_min cannot be greater than horas_extras_max"})
	}
	if f.Status != nil {
		if _, err := ParseStatus(*f.Status); err != nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status"})
		}
	}
	if err := validateRange(f.StartDate, f.EndDate); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordQuery selects records without pagination, for reports and maintenance jobs.
type RecordQuery struct {
	EmployeeID     *string
	WorkSiteID     *string
	StartDate      *time.Time
	EndDate        *time.Time
	Date           *time.Time
	Status         *Status
	OvertimeOnly   bool
	ZeroHoursOnly  bool
	ContinuousOnly bool
	Unconfirmed    bool
}

func validateRange(start, end *string) error {
	var errs validator.ValidationErrors
	var from, to time.Time
	var okFrom, okTo bool

	if start != nil {
		if from, okFrom = validator.IsValidDate(*start); !okFrom {
			errs = append(errs, validator.ValidationError{Field: "data_inicio", Message: "data_inicio must be in YYYY-MM-DD format"})
		}
	}
	if end != nil {
		if to, okTo = validator.IsValidDate(*end); !okTo {
			errs = append(errs, validator.ValidationError{Field: "data_fim", Message: "data_fim must be in YYYY-MM-DD format"})
		}
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "data_fim", Message: "data_fim must not be before data_inicio"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type RecordResponse struct {
	ID                        string  `json:"id"`
	EmployeeID                string  `json:"funcionario_id"`
	EmployeeName              *string `json:"funcionario_nome,omitempty"`
	EmployeeRole              *string `json:"funcionario_cargo,omitempty"`
	Date                      string  `json:"data"`
	Entry                     *string `json:"entrada"`
	LunchOut                  *string `json:"saida_almoco"`
	LunchIn                   *string `json:"volta_almoco"`
	Exit                      *string `json:"saida"`
	WorkedHours               float64 `json:"horas_trabalhadas"`
	OvertimeHours             float64 `json:"horas_extras"`
	Status                    Status  `json:"status"`
	Notes                     *string `json:"observacoes"`
	Location                  *string `json:"localizacao"`
	DayType                   string  `json:"tipo_dia"`
	IsHoliday                 bool    `json:"is_feriado"`
	ApprovedBy                *string `json:"aprovado_por"`
	ApprovedAt                *string `json:"data_aprovacao"`
	SignaturePath             *string `json:"assinatura_digital_path"`
	ContinuousWork            bool    `json:"trabalho_corrido"`
	ContinuousWorkConfirmed   bool    `json:"trabalho_corrido_confirmado"`
	ContinuousWorkConfirmedBy *string `json:"trabalho_corrido_confirmado_por"`
	Version                   int     `json:"version"`
	CreatedAt                 string  `json:"created_at"`
	UpdatedAt                 string  `json:"updated_at"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Records    []RecordResponse `json:"registros"`
}

type AlterationResponse struct {
	ID            string  `json:"id"`
	RecordID      string  `json:"registro_ponto_id"`
	Field         string  `json:"campo_alterado"`
	OldValue      *string `json:"valor_anterior"`
	NewValue      *string `json:"valor_novo"`
	Justification string  `json:"justificativa"`
	ChangedBy     string  `json:"alterado_por"`
	ChangedAt     string  `json:"data_alteracao"`
}

type ApprovalEventResponse struct {
	ID         string    `json:"id"`
	RecordID   string    `json:"registro_ponto_id"`
	Type       EventType `json:"tipo"`
	Actor      string    `json:"ator"`
	Reason     *string   `json:"motivo,omitempty"`
	Notes      *string   `json:"observacoes,omitempty"`
	OccurredAt string    `json:"ocorrido_em"`
}

type EmployeeSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"nome"`
	Role   string  `json:"cargo"`
	Shift  *string `json:"turno"`
	Status string  `json:"status"`
}

type EmployeeListResponse struct {
	Employees []EmployeeSummary `json:"funcionarios"`
	IsAdmin   bool              `json:"isAdmin"`
}

type ManagerResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"nome"`
	Role       string  `json:"cargo"`
	WorkSiteID *string `json:"obra_atual_id"`
}

// ShowingRange formats the "1-20 of 57" label used by list responses.
func ShowingRange(page, limit, count int, total int64) string {
	if count == 0 {
		return fmt.Sprintf("0 of %d", total)
	}
	start := (page-1)*limit + 1
	return fmt.Sprintf("%d-%d of %d", start, start+count-1, total)
}

// NewRecordResponse maps a record to its wire form.
func NewRecordResponse(r Record) RecordResponse {
	var approvedAt *string
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}
	return RecordResponse{
		ID:                        r.ID,
		EmployeeID:                r.EmployeeID,
		EmployeeName:              r.EmployeeName,
		EmployeeRole:              r.EmployeeRole,
		Date:                      r.Date.Format("2006-01-02"),
		Entry:                     r.Entry,
		LunchOut:                  r.LunchOut,
		LunchIn:                   r.LunchIn,
		Exit:                      r.Exit,
		WorkedHours:               r.WorkedHours,
		OvertimeHours:             r.OvertimeHours,
		Status:                    r.Status,
		Notes:                     r.Notes,
		Location:                  r.Location,
		DayType:                   string(r.DayType),
		IsHoliday:                 r.IsHoliday,
		ApprovedBy:                r.ApprovedBy,
		ApprovedAt:                approvedAt,
		SignaturePath:             r.SignaturePath,
		ContinuousWork:            r.ContinuousWork,
		ContinuousWorkConfirmed:   r.ContinuousWorkConfirmed,
		ContinuousWorkConfirmedBy: r.ContinuousWorkConfirmedBy,
		Version:                   r.Version,
		CreatedAt:                 r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                 r.UpdatedAt.Format(time.RFC3339),
	}
}
