package timeclock

import "context"

// RecordService owns the lifecycle of daily attendance records.
type RecordService interface {
	// RegisterStamp creates the day's record or fills in its next stamp.
	RegisterStamp(ctx context.Context, req StampRequest) (StampResult, error)

	// EditStamp corrects an existing record and writes one history row per changed stamp.
	EditStamp(ctx context.Context, req EditRequest) (RecordResponse, error)

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
	ListHistory(ctx context.Context, recordID string) ([]AlterationResponse, error)

	// Recalculate recomputes derived fields for stored records.
	Recalculate(ctx context.Context, req RecalculateRequest) (RecalculateResponse, error)

	// ValidateRecords scans records for inconsistent stamps or derived fields.
	ValidateRecords(ctx context.Context, filter IntegrityFilter) (IntegrityReport, error)

	ListPendingContinuousWork(ctx context.Context, date string, workSiteID *string) ([]RecordResponse, error)
	ConfirmContinuousWork(ctx context.Context, req ContinuousWorkRequest) (RecordResponse, error)

	// ListEmployees lists the employees the caller may stamp for.
	ListEmployees(ctx context.Context) (EmployeeListResponse, error)
}

// ApprovalService drives the overtime approval workflow.
type ApprovalService interface {
	SubmitForApproval(ctx context.Context, req SubmitApprovalRequest) (RecordResponse, error)
	Approve(ctx context.Context, req ApproveRequest) (RecordResponse, error)
	ApproveWithSignature(ctx context.Context, req SignatureApprovalRequest) (RecordResponse, error)
	Reject(ctx context.Context, req RejectRequest) (RecordResponse, error)
	ApproveBatch(ctx context.Context, req BatchApproveRequest) (BatchResponse, error)
	RejectBatch(ctx context.Context, req BatchRejectRequest) (BatchResponse, error)

	// ListPendingApprovals lists records awaiting approval at the manager's work site.
	ListPendingApprovals(ctx context.Context, managerID string) ([]RecordResponse, error)
	ListManagers(ctx context.Context, workSiteID string) ([]ManagerResponse, error)
	ListEvents(ctx context.Context, recordID string) ([]ApprovalEventResponse, error)
}
