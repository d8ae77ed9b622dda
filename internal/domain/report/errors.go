package report

import "errors"

var (
	ErrInvalidMonth     = errors.New("mes must be between 1 and 12")
	ErrInvalidYear      = errors.New("ano must be between 2000 and 2100")
	ErrInvalidDateRange = errors.New("data_fim must not be before data_inicio")
)
