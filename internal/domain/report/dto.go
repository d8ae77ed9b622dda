package report

import (
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
)

// ========================================
// PERIOD SUMMARY
// ========================================

// PeriodSummary folds a set of records over an inclusive date range.
type PeriodSummary struct {
	TotalHours         float64                    `json:"totalHoras"`
	TotalOvertimeHours float64                    `json:"totalHorasExtras"`
	DaysWorked         int                        `json:"diasTrabalhados"`
	LateCount          int                        `json:"atrasos"`
	AbsenceCount       int                        `json:"faltas"`
	Records            []timeclock.RecordResponse `json:"registros"`
}

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	Month      int
	Year       int
	EmployeeID *string
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "mes", Message: ErrInvalidMonth.Error()})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "ano", Message: ErrInvalidYear.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Bounds returns the first and last day of the requested month.
func (r *MonthlyReportRequest) Bounds() (time.Time, time.Time) {
	return MonthBounds(r.Year, r.Month)
}

type Period struct {
	Month     int    `json:"mes,omitempty"`
	Year      int    `json:"ano,omitempty"`
	StartDate string `json:"data_inicio"`
	EndDate   string `json:"data_fim"`
}

type MonthlyReport struct {
	Period     Period        `json:"periodo"`
	EmployeeID *string       `json:"funcionario_id,omitempty"`
	Summary    PeriodSummary `json:"resumo"`
}

// ========================================
// OVERTIME REPORT
// ========================================

type OvertimeReportRequest struct {
	StartDate string
	EndDate   string
	Status    *string
}

func (r *OvertimeReportRequest) Validate() error {
	var errs validator.ValidationErrors
	from, okFrom := validator.IsValidDate(r.StartDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "data_inicio", Message: "data_inicio is required in YYYY-MM-DD format"})
	}
	to, okTo := validator.IsValidDate(r.EndDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "data_fim", Message: "data_fim is required in YYYY-MM-DD format"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "data_fim", Message: ErrInvalidDateRange.Error()})
	}
	if r.Status != nil {
		if _, err := timeclock.ParseStatus(*r.Status); err != nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeReport struct {
	Period             Period                     `json:"periodo"`
	Status             timeclock.Status           `json:"status"`
	TotalRecords       int                        `json:"total_registros"`
	TotalOvertimeHours float64                    `json:"total_horas_extras"`
	Records            []timeclock.RecordResponse `json:"registros"`
}

// ========================================
// OVERTIME PREMIUM SUMMARY
// ========================================

type OvertimeSummaryRequest struct {
	EmployeeID string
	Month      int
	Year       int
}

func (r *OvertimeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "funcionario_id", Message: "funcionario_id is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "mes", Message: ErrInvalidMonth.Error()})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "ano", Message: ErrInvalidYear.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OvertimeBucket totals overtime for one weekday or for holidays.
type OvertimeBucket struct {
	OvertimeHours float64 `json:"horas_extras"`
	Records       int     `json:"registros"`
	Premium       float64 `json:"acrescimo"`
	WithPremium   float64 `json:"total_com_acrescimo"`
}

type OvertimeTotals struct {
	OvertimeHours float64 `json:"horas_extras"`
	WithPremium   float64 `json:"total_com_acrescimos"`
}

type OvertimeSummary struct {
	Buckets map[string]OvertimeBucket `json:"resumo"`
	Totals  OvertimeTotals            `json:"totais"`
	Period  Period                    `json:"periodo"`
}

// ========================================
// RECORD STATISTICS
// ========================================

type StatisticsRequest struct {
	EmployeeID *string
	WorkSiteID *string
	StartDate  *string
	EndDate    *string
	Status     *string
}

func (r *StatisticsRequest) Validate() error {
	var errs validator.ValidationErrors
	var from, to time.Time
	var okFrom, okTo bool
	if r.StartDate != nil {
		if from, okFrom = validator.IsValidDate(*r.StartDate); !okFrom {
			errs = append(errs, validator.ValidationError{Field: "data_inicio", Message: "data_inicio must be in YYYY-MM-DD format"})
		}
	}
	if r.EndDate != nil {
		if to, okTo = validator.IsValidDate(*r.EndDate); !okTo {
			errs = append(errs, validator.ValidationError{Field: "data_fim", Message: "data_fim must be in YYYY-MM-DD format"})
		}
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "data_fim", Message: ErrInvalidDateRange.Error()})
	}
	if r.Status != nil {
		if _, err := timeclock.ParseStatus(*r.Status); err != nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GroupTotals struct {
	Records       int     `json:"registros"`
	WorkedHours   float64 `json:"horas_trabalhadas"`
	OvertimeHours float64 `json:"horas_extras"`
	Name          string  `json:"nome,omitempty"`
	Employees     int     `json:"total_funcionarios,omitempty"`
}

type RecordStatistics struct {
	TotalRecords       int                    `json:"total_registros"`
	TotalWorkedHours   float64                `json:"total_horas_trabalhadas"`
	TotalOvertimeHours float64                `json:"total_horas_extras"`
	MeanWorkedHours    float64                `json:"media_horas_trabalhadas"`
	MeanOvertimeHours  float64                `json:"media_horas_extras"`
	ByStatus           map[string]GroupTotals `json:"por_status"`
	ByEmployee         map[string]GroupTotals `json:"por_funcionario"`
	ByWorkSite         map[string]GroupTotals `json:"por_obra"`
}

// MonthBounds returns the first and last calendar day of month in UTC.
func MonthBounds(year, month int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
