package justification

import (
	"fmt"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/pkg/textnorm"
)

type Type string

const (
	TypeLate           Type = "Atraso"
	TypeAbsence        Type = "Falta"
	TypeEarlyDeparture Type = "Saída Antecipada"
	TypePartialAbsence Type = "Ausência Parcial"
)

var AllTypes = []Type{TypeLate, TypeAbsence, TypeEarlyDeparture, TypePartialAbsence}

// ParseType matches s against the four justification types ignoring case and accents.
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes {
		if textnorm.Equal(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

type Status string

const (
	StatusPending  Status = "Pendente"
	StatusApproved Status = "Aprovada"
	StatusRejected Status = "Rejeitada"
)

var AllStatuses = []Status{StatusPending, StatusApproved, StatusRejected}

func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if textnorm.Equal(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Justification is an employee's self-reported explanation for an absence or
// lateness. It is independent of any clock record.
type Justification struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	Type           Type
	Reason         string
	Status         Status
	ApprovedBy     *string
	ApprovedAt     *time.Time
	AttachmentPath *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeRole *string
	WorkSiteID   *string
}

// RejectionNote is appended to the original reason when a justification is rejected.
func RejectionNote(reason, rejection string) string {
	return reason + "\n\nMotivo da rejeição: " + rejection
}
