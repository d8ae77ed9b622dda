package justification

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
)

// ========================================
// REQUEST DTOs
// ========================================

var attachmentExtensions = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png", ".gif", ".webp"}

const MaxAttachmentSize = 10 << 20

type CreateRequest struct {
	EmployeeID string                `json:"funcionario_id"`
	Date       string                `json:"data"`
	Type       string                `json:"tipo"`
	Reason     string                `json:"motivo"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "funcionario_id", Message: "funcionario_id is required"})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "data", Message: "data is required"})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "data", Message: "data must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "tipo", Message: "tipo is required"})
	} else if _, err := ParseType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{Field: "tipo", Message: ErrInvalidType.Error()})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "motivo", Message: "motivo is required"})
	}

	if r.FileHeader != nil {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if !validator.IsInSlice(ext, attachmentExtensions) {
			errs = append(errs, validator.ValidationError{Field: "anexo", Message: ErrAttachmentType.Error()})
		} else if r.FileHeader.Size > MaxAttachmentSize {
			errs = append(errs, validator.ValidationError{Field: "anexo", Message: ErrAttachmentTooLarge.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
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

type ListFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Type       *string
	Page       int
	Limit      int
}

func (f *ListFilter) Validate() error {
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
	if f.Status != nil {
		st, err := ParseStatus(*f.Status)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be Pendente, Aprovada or Rejeitada"})
		} else {
			s := string(st)
			f.Status = &s
		}
	}
	if f.Type != nil {
		t, err := ParseType(*f.Type)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "tipo", Message: ErrInvalidType.Error()})
		} else {
			s := string(t)
			f.Type = &s
		}
	}
	errs = append(errs, validateRange(f.StartDate, f.EndDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Query selects justifications without pagination.
type Query struct {
	EmployeeID *string
	WorkSiteID *string
	StartDate  time.Time
	EndDate    time.Time
	Status     *Status
	Type       *Type
}

type MonthlyReportRequest struct {
	Month      int
	Year       int
	EmployeeID *string
	WorkSiteID *string
	Status     *string
	Type       *string
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "mes", Message: "mes must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "ano", Message: "ano must be between 2000 and 2100"})
	}
	errs = append(errs, validateStatusAndType(r.Status, r.Type)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var groupings = []string{"funcionario", "tipo", "status", "dia", "semana"}

type PeriodReportRequest struct {
	StartDate  string
	EndDate    string
	EmployeeID *string
	WorkSiteID *string
	Status     *string
	Type       *string
	GroupBy    string
}

func (r *PeriodReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "data_inicio", Message: "data_inicio is required"})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "data_fim", Message: "data_fim is required"})
	}
	if len(errs) == 0 {
		errs = append(errs, validateRange(&r.StartDate, &r.EndDate)...)
	}
	if r.GroupBy == "" {
		r.GroupBy = "funcionario"
	}
	if !validator.IsInSlice(r.GroupBy, groupings) {
		errs = append(errs, validator.ValidationError{Field: "agrupar_por", Message: "agrupar_por must be one of funcionario, tipo, status, dia, semana"})
	}
	errs = append(errs, validateStatusAndType(r.Status, r.Type)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

const (
	PeriodLastMonth       = "ultimo_mes"
	PeriodLastThreeMonths = "ultimos_3_meses"
	PeriodLastYear        = "ultimo_ano"
)

type StatisticsRequest struct {
	Period     string
	EmployeeID *string
	WorkSiteID *string
}

func (r *StatisticsRequest) Validate() error {
	if r.Period == "" {
		r.Period = PeriodLastMonth
	}
	if !validator.IsInSlice(r.Period, []string{PeriodLastMonth, PeriodLastThreeMonths, PeriodLastYear}) {
		return validator.ValidationErrors{{
			Field:   "periodo",
			Message: "periodo must be ultimo_mes, ultimos_3_meses or ultimo_ano",
		}}
	}
	return nil
}

func validateStatusAndType(status, typ *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if status != nil {
		if _, err := ParseStatus(*status); err != nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be Pendente, Aprovada or Rejeitada"})
		}
	}
	if typ != nil {
		if _, err := ParseType(*typ); err != nil {
			errs = append(errs, validator.ValidationError{Field: "tipo", Message: ErrInvalidType.Error()})
		}
	}
	return errs
}

func validateRange(start, end *string) validator.ValidationErrors {
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
	return errs
}

// ========================================
// RESPONSE DTOs
// ========================================

type JustificationResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"funcionario_id"`
	EmployeeName   *string `json:"funcionario_nome,omitempty"`
	Date           string  `json:"data"`
	Type           Type    `json:"tipo"`
	Reason         string  `json:"motivo"`
	Status         Status  `json:"status"`
	ApprovedBy     *string `json:"aprovado_por"`
	ApprovedAt     *string `json:"data_aprovacao"`
	AttachmentPath *string `json:"anexo"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ListResponse struct {
	TotalCount     int64                   `json:"total_count"`
	Page           int                     `json:"page"`
	Limit          int                     `json:"limit"`
	TotalPages     int                     `json:"total_pages"`
	Showing        string                  `json:"showing"`
	Justifications []JustificationResponse `json:"justificativas"`
}

type EmployeeCount struct {
	EmployeeID   string  `json:"funcionario_id"`
	EmployeeName *string `json:"nome,omitempty"`
	Total        int     `json:"total"`
}

type GroupCount struct {
	Key   string `json:"chave"`
	Total int    `json:"total"`
}

type Trend struct {
	Previous      int     `json:"mes_anterior"`
	Current       int     `json:"mes_atual"`
	PercentChange float64 `json:"variacao_percentual"`
	Direction     string  `json:"tendencia"`
}

type Latency struct {
	Samples int     `json:"amostras"`
	Hours   float64 `json:"horas"`
	Days    float64 `json:"dias"`
}

type Summary struct {
	Total       int             `json:"total"`
	ByStatus    map[string]int  `json:"por_status"`
	ByType      map[string]int  `json:"por_tipo"`
	ByWeekday   map[string]int  `json:"por_dia_semana"`
	ByEmployee  []EmployeeCount `json:"por_funcionario"`
	TopEmployee *EmployeeCount  `json:"funcionario_destaque"`
}

type MonthlyPeriod struct {
	Month     int    `json:"mes"`
	Year      int    `json:"ano"`
	StartDate string `json:"data_inicio"`
	EndDate   string `json:"data_fim"`
}

type MonthlyReport struct {
	Period         MonthlyPeriod           `json:"periodo"`
	Summary        Summary                 `json:"resumo"`
	Trend          Trend                   `json:"tendencia_mensal"`
	Justifications []JustificationResponse `json:"justificativas"`
}

type DateRange struct {
	StartDate    string `json:"data_inicio"`
	EndDate      string `json:"data_fim"`
	BusinessDays int    `json:"dias_uteis"`
}

type PeriodReport struct {
	Period          DateRange      `json:"periodo"`
	Total           int            `json:"total"`
	DailyMean       float64        `json:"media_diaria"`
	ByStatus        map[string]int `json:"por_status"`
	ByType          map[string]int `json:"por_tipo"`
	ApprovalRate    float64        `json:"taxa_aprovacao"`
	UniqueEmployees int            `json:"funcionarios_unicos"`
	GroupBy         string         `json:"agrupado_por"`
	Groups          []GroupCount   `json:"grupos"`
}

type Statistics struct {
	Period          DateRange      `json:"periodo"`
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"por_status"`
	ByType          map[string]int `json:"por_tipo"`
	ByWeekday       map[string]int `json:"por_dia_semana"`
	ByISOWeek       map[string]int `json:"por_semana"`
	TopEmployee     *EmployeeCount `json:"funcionario_destaque"`
	ApprovalRate    float64        `json:"taxa_aprovacao"`
	ApprovalLatency Latency        `json:"tempo_medio_aprovacao"`
}
