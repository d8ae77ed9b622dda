package timeclock

import "errors"

// Validation errors
var (
	ErrInvalidDate           = errors.New("invalid date, expected YYYY-MM-DD")
	ErrFutureDate            = errors.New("date cannot be in the future")
	ErrInvalidTime           = errors.New("invalid time, expected HH:MM")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidDayType        = errors.New("invalid day type")
	ErrEmployeeInactive      = errors.New("Funcionário não encontrado ou inativo")
	ErrRoleNotAllowed        = errors.New("only Operário and Sinaleiro employees can register time stamps")
	ErrOutsideWorkSite       = errors.New("location is outside the allowed radius of the work site")
	ErrJustificationRequired = errors.New("justificativa_alteracao is required")
	ErrNoOvertime            = errors.New("Este registro não possui horas extras para aprovação")
	ErrDifferentWorkSite     = errors.New("manager and employee must be assigned to the same work site")
	ErrSignatureRequired     = errors.New("assinatura_digital is required")
	ErrInvalidSignature      = errors.New("assinatura_digital is not a valid base64 PNG image")
	ErrReasonRequired        = errors.New("motivo_rejeicao is required")
	ErrNotContinuousWork     = errors.New("record is not marked as continuous work")
)

// Not found errors
var (
	ErrRecordNotFound  = errors.New("time record not found")
	ErrManagerNotFound = errors.New("manager not found or inactive")
)

// Conflict errors. Each names the sequencing or state rule that was broken.
var (
	ErrEntryAlreadyOpen       = errors.New("entry already open")
	ErrLunchAlreadyOpen       = errors.New("lunch-out already open without lunch-in")
	ErrLunchInBeforeLunchOut  = errors.New("cannot register lunch-in before lunch-out")
	ErrExitBeforeEntry        = errors.New("cannot register exit before entry")
	ErrExitAlreadyRegistered  = errors.New("exit already registered")
	ErrNotPendingApproval     = errors.New("record is not pending approval")
	ErrAlreadyDecided         = errors.New("overtime for this record was already approved or rejected")
	ErrConcurrentModification = errors.New("record was modified concurrently, retry the request")
)
