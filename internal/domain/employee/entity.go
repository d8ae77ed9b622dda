package employee

import "github.com/gruamaster/ponto-backend-go/internal/pkg/textnorm"

const StatusActive = "Ativo"

// Employee is the read-only view of the HR directory the time clock needs.
type Employee struct {
	ID         string
	Name       string
	Role       string // cargo
	Shift      *string
	WorkSiteID *string
	UserID     *string
	Status     string
}

func (e Employee) IsActive() bool {
	return textnorm.Equal(e.Status, StatusActive)
}

// SameWorkSite reports whether both employees are assigned to the same site.
// Employees without an assignment never match.
func (e Employee) SameWorkSite(other Employee) bool {
	if e.WorkSiteID == nil || other.WorkSiteID == nil {
		return false
	}
	return *e.WorkSiteID == *other.WorkSiteID
}

// HasRole reports whether the employee's cargo is one of roles, ignoring case and accents.
func (e Employee) HasRole(roles []string) bool {
	return textnorm.In(e.Role, roles)
}

// WorkSite is a construction site (obra) employees are assigned to.
type WorkSite struct {
	ID        string
	Name      string
	State     *string
	Latitude  *float64
	Longitude *float64
}

func (w WorkSite) HasCoordinates() bool {
	return w.Latitude != nil && w.Longitude != nil
}
