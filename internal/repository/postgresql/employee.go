package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gruamaster/ponto-backend-go/internal/domain/employee"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, role, shift, work_site_id, user_id, status`

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	var emp employee.Employee
	err := q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id).Scan(
		&emp.ID, &emp.Name, &emp.Role, &emp.Shift, &emp.WorkSiteID, &emp.UserID, &emp.Status,
	)
	return emp, err
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	conds := []string{"status ILIKE $1"}
	args := []interface{}{employee.StatusActive}
	if len(filter.IDs) > 0 {
		args = append(args, filter.IDs)
		conds = append(conds, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	if filter.WorkSiteID != nil {
		args = append(args, *filter.WorkSiteID)
		conds = append(conds, fmt.Sprintf("work_site_id = $%d", len(args)))
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY name`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Role, &emp.Shift, &emp.WorkSiteID, &emp.UserID, &emp.Status); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

// GetWorkSite implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetWorkSite(ctx context.Context, id string) (employee.WorkSite, error) {
	q := GetQuerier(ctx, e.db)

	var site employee.WorkSite
	err := q.QueryRow(ctx, `SELECT id, name, state, latitude, longitude FROM work_sites WHERE id = $1`, id).Scan(
		&site.ID, &site.Name, &site.State, &site.Latitude, &site.Longitude,
	)
	return site, err
}
