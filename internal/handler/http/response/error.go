package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/domain/justification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/notification"
	"github.com/gruamaster/ponto-backend-go/internal/domain/report"
	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/validator"
)

var badRequestErrors = []error{
	timeclock.ErrInvalidDate,
	timeclock.ErrFutureDate,
	timeclock.ErrInvalidTime,
	timeclock.ErrInvalidStatus,
	timeclock.ErrInvalidDayType,
	timeclock.ErrEmployeeInactive,
	timeclock.ErrOutsideWorkSite,
	timeclock.ErrJustificationRequired,
	timeclock.ErrNoOvertime,
	timeclock.ErrDifferentWorkSite,
	timeclock.ErrSignatureRequired,
	timeclock.ErrInvalidSignature,
	timeclock.ErrReasonRequired,
	timeclock.ErrNotContinuousWork,
	justification.ErrInvalidType,
	justification.ErrInvalidStatus,
	justification.ErrEmployeeInactive,
	justification.ErrFutureDate,
	justification.ErrReasonRequired,
	justification.ErrAttachmentTooLarge,
	justification.ErrAttachmentType,
	report.ErrInvalidMonth,
	report.ErrInvalidYear,
	report.ErrInvalidDateRange,
}

var notFoundErrors = []error{
	timeclock.ErrRecordNotFound,
	timeclock.ErrManagerNotFound,
	justification.ErrJustificationNotFound,
	notification.ErrNotificationNotFound,
}

var conflictErrors = []error{
	timeclock.ErrEntryAlreadyOpen,
	timeclock.ErrLunchAlreadyOpen,
	timeclock.ErrLunchInBeforeLunchOut,
	timeclock.ErrExitBeforeEntry,
	timeclock.ErrExitAlreadyRegistered,
	timeclock.ErrNotPendingApproval,
	timeclock.ErrAlreadyDecided,
	timeclock.ErrConcurrentModification,
	justification.ErrAlreadyProcessed,
}

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HandleError maps domain errors to HTTP responses. Unknown errors are logged
// and reported as a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrForbidden), errors.Is(err, auth.ErrNoLinkedEmployee), errors.Is(err, timeclock.ErrRoleNotAllowed):
		Forbidden(w, err.Error())
	case matches(err, notFoundErrors):
		NotFound(w, err.Error())
	case matches(err, conflictErrors):
		Conflict(w, err.Error())
	case matches(err, badRequestErrors):
		BadRequest(w, err.Error(), nil)
	default:
		slog.Error("unhandled error", slog.Any("error", err))
		InternalServerError(w, "An unexpected error occurred")
	}
}
