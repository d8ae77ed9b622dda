package timeclock

import (
	"context"
	"time"
)

// RecordRepository persists attendance records. Uniqueness of
// (employee, date) is enforced by the store, and updates are guarded by Version.
type RecordRepository interface {
	// Insert creates the record unless one already exists for the same
	// employee and date, in which case created is false and the stored row is returned.
	Insert(ctx context.Context, record Record) (stored Record, created bool, err error)

	// GetByID retrieves a record with its employee join.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// Update writes every mutable column when record.Version still matches,
	// returning the record with its new version. A stale version yields ErrConcurrentModification.
	Update(ctx context.Context, record Record) (Record, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// Find retrieves every record matching q, ordered by date descending.
	Find(ctx context.Context, q RecordQuery) ([]Record, error)

	GetByIDs(ctx context.Context, ids []string) ([]Record, error)
}

type AlterationRepository interface {
	CreateBatch(ctx context.Context, entries []Alteration) error
	// ListByRecord returns the history newest first.
	ListByRecord(ctx context.Context, recordID string) ([]Alteration, error)
}

type ApprovalEventRepository interface {
	Append(ctx context.Context, event ApprovalEvent) error
	ListByRecord(ctx context.Context, recordID string) ([]ApprovalEvent, error)
}

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
