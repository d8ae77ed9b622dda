package auth

import "context"

// Caller is the authenticated identity performing a request. Tokens are issued
// by the platform's identity service; this service only reads them.
type Caller struct {
	UserID     string
	EmployeeID *string
	Role       string
	Level      int
}

// Authorizer is handed to services so that permission decisions never reach
// into role tables directly.
type Authorizer interface {
	// Caller returns the identity attached to ctx, or ErrUnauthenticated.
	Caller(ctx context.Context) (Caller, error)

	// IsAdmin reports whether employeeID holds administrator rights in ctx.
	IsAdmin(ctx context.Context, employeeID string) bool

	// CanApprove reports whether the caller may approve or reject records.
	CanApprove(ctx context.Context) bool
}
