package auth

import (
	"context"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/gruamaster/ponto-backend-go/internal/domain/auth"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/jwt"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/textnorm"
)

const adminRole = "admin"

// ClaimsAuthorizer answers permission questions from the verified JWT that
// jwtauth.Verifier stored in the request context.
type ClaimsAuthorizer struct {
	adminLevel   int
	managerRoles []string
}

func NewClaimsAuthorizer(adminLevel int, managerRoles []string) *ClaimsAuthorizer {
	return &ClaimsAuthorizer{adminLevel: adminLevel, managerRoles: managerRoles}
}

func (a *ClaimsAuthorizer) Caller(ctx context.Context) (auth.Caller, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return auth.Caller{}, auth.ErrUnauthenticated
	}
	if t, _ := claims["type"].(string); t != "" && t != jwt.TokenTypeAccess && t != jwt.TokenTypeSSE {
		return auth.Caller{}, auth.ErrInvalidToken
	}
	c, ok := jwt.ClaimsFromMap(claims)
	if !ok {
		return auth.Caller{}, auth.ErrInvalidToken
	}

	caller := auth.Caller{UserID: c.UserID, Role: c.Role, Level: c.Level}
	if c.EmployeeID != "" {
		caller.EmployeeID = &c.EmployeeID
	}
	return caller, nil
}

// IsAdmin is true only when employeeID identifies the caller (by employee or
// user id) and the caller has the admin role or level.
func (a *ClaimsAuthorizer) IsAdmin(ctx context.Context, employeeID string) bool {
	caller, err := a.Caller(ctx)
	if err != nil || employeeID == "" {
		return false
	}
	self := employeeID == caller.UserID || (caller.EmployeeID != nil && employeeID == *caller.EmployeeID)
	return self && a.admin(caller)
}

func (a *ClaimsAuthorizer) CanApprove(ctx context.Context) bool {
	caller, err := a.Caller(ctx)
	if err != nil {
		return false
	}
	return a.admin(caller) || textnorm.In(caller.Role, a.managerRoles)
}

func (a *ClaimsAuthorizer) admin(c auth.Caller) bool {
	if strings.EqualFold(c.Role, adminRole) {
		return true
	}
	return a.adminLevel > 0 && c.Level >= a.adminLevel
}
