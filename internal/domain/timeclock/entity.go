package timeclock

import (
	"fmt"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/pkg/textnorm"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/timecalc"
)

type Status string

const (
	StatusMissing         Status = "Falta"
	StatusInProgress      Status = "Em Andamento"
	StatusLate            Status = "Atraso"
	StatusPendingApproval Status = "Pendente Aprovação"
	StatusIncomplete      Status = "Incompleto"
	StatusComplete        Status = "Completo"
	StatusApproved        Status = "Aprovado"
	StatusRejected        Status = "Rejeitado"
)

var AllStatuses = []Status{
	StatusMissing, StatusInProgress, StatusLate, StatusPendingApproval,
	StatusIncomplete, StatusComplete, StatusApproved, StatusRejected,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsOverride reports whether s is a manual decision that replaces the computed classification.
func (s Status) IsOverride() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseStatus matches s against the known statuses ignoring case and accents.
func ParseStatus(s string) (Status, error) {
	for _, v := range AllStatuses {
		if textnorm.Equal(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Record is one employee's attendance for one calendar day.
type Record struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Entry         *string
	LunchOut      *string
	LunchIn       *string
	Exit          *string
	WorkedHours   float64
	OvertimeHours float64
	Status        Status
	Notes         *string
	Location      *string
	Latitude      *float64
	Longitude     *float64
	DayType       timecalc.DayType
	IsHoliday     bool

	ApprovedBy      *string
	ApprovedAt      *time.Time
	SignaturePath   *string
	SignatureDigest *string

	ContinuousWork            bool
	ContinuousWorkConfirmed   bool
	ContinuousWorkConfirmedBy *string
	ContinuousWorkConfirmedAt *time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	EmployeeName  *string
	EmployeeRole  *string
	EmployeeShift *string
	WorkSiteID    *string
}

// Punches returns the stamps in the shape timecalc works with.
func (r Record) Punches() timecalc.Punches {
	return timecalc.Punches{
		Entry:    deref(r.Entry),
		LunchOut: deref(r.LunchOut),
		LunchIn:  deref(r.LunchIn),
		Exit:     deref(r.Exit),
	}
}

func (r Record) Day() timecalc.Day {
	dayType := r.DayType
	if !dayType.IsValid() {
		dayType = timecalc.DayTypeForWeekday(r.Date)
	}
	return timecalc.NewDay(r.Date, dayType)
}

// Stamp field names as they appear in the alteration history.
const (
	FieldEntry    = "entrada"
	FieldLunchOut = "saida_almoco"
	FieldLunchIn  = "volta_almoco"
	FieldExit     = "saida"
)

// Alteration is an immutable audit row written when an existing record's stamp is edited.
type Alteration struct {
	ID            string
	RecordID      string
	Field         string
	OldValue      *string
	NewValue      *string
	Justification string
	ChangedBy     string
	ChangedAt     time.Time
}

type EventType string

const (
	EventSubmitted EventType = "submitted"
	EventApproved  EventType = "approved"
	EventRejected  EventType = "rejected"
)

// ApprovalEvent is one entry of a record's append-only approval log.
type ApprovalEvent struct {
	ID         string
	RecordID   string
	Type       EventType
	Actor      string
	Reason     *string
	Notes      *string
	OccurredAt time.Time
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
