package justification

import "errors"

var (
	ErrJustificationNotFound = errors.New("justification not found")
	ErrInvalidType           = errors.New("tipo must be one of Atraso, Falta, Saída Antecipada, Ausência Parcial")
	ErrInvalidStatus         = errors.New("invalid justification status")
	ErrEmployeeInactive      = errors.New("Funcionário não encontrado ou inativo")
	ErrFutureDate            = errors.New("date cannot be in the future")
	ErrReasonRequired        = errors.New("motivo_rejeicao is required")
	ErrAlreadyProcessed      = errors.New("justification has already been approved or rejected")
	ErrAttachmentTooLarge    = errors.New("attachment must not exceed 10MB")
	ErrAttachmentType        = errors.New("attachment must be pdf, doc, docx, jpg, jpeg, png, gif or webp")
)
