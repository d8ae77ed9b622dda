package employee

import "context"

// ListFilter narrows ListActive. Empty fields are ignored.
type ListFilter struct {
	IDs        []string
	WorkSiteID *string
}

// EmployeeRepository reads the HR directory. The time clock never writes to it.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context, filter ListFilter) ([]Employee, error)
	GetWorkSite(ctx context.Context, id string) (WorkSite, error)
}
