package justification

import "context"

type JustificationRepository interface {
	Create(ctx context.Context, j Justification) (Justification, error)
	GetByID(ctx context.Context, id string) (Justification, error)

	// UpdateDecision stores the approval/rejection outcome only while the row
	// is still Pending. It returns ErrAlreadyProcessed otherwise.
	UpdateDecision(ctx context.Context, j Justification) (Justification, error)

	// List retrieves justifications with filters and pagination, newest date first.
	List(ctx context.Context, filter ListFilter) ([]Justification, int64, error)

	// Find retrieves every justification matching q, for reports.
	Find(ctx context.Context, q Query) ([]Justification, error)
}
