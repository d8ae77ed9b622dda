package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gruamaster/ponto-backend-go/internal/domain/justification"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const justificationColumns = `
	j.id, j.employee_id, j.date, j.type, j.reason, j.status, j.approved_by, j.approved_at,
	j.attachment_path, j.created_at, j.updated_at, e.name, e.role, e.work_site_id`

const justificationFrom = `
	FROM justifications j
	LEFT JOIN employees e ON e.id = j.employee_id`

type justificationRepository struct {
	db *database.DB
}

func NewJustificationRepository(db *database.DB) justification.JustificationRepository {
	return &justificationRepository{db: db}
}

func scanJustification(row pgx.Row) (justification.Justification, error) {
	var j justification.Justification
	var typ, status string
	err := row.Scan(
		&j.ID, &j.EmployeeID, &j.Date, &typ, &j.Reason, &status, &j.ApprovedBy, &j.ApprovedAt,
		&j.AttachmentPath, &j.CreatedAt, &j.UpdatedAt, &j.EmployeeName, &j.EmployeeRole, &j.WorkSiteID,
	)
	j.Type = justification.Type(typ)
	j.Status = justification.Status(status)
	return j, err
}

func collectJustifications(rows pgx.Rows) ([]justification.Justification, error) {
	defer rows.Close()
	var out []justification.Justification
	for rows.Next() {
		j, err := scanJustification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan justification: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// Create implements justification.JustificationRepository.
func (r *justificationRepository) Create(ctx context.Context, j justification.Justification) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO justifications (id, employee_id, date, type, reason, status, attachment_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query, j.ID, j.EmployeeID, j.Date, string(j.Type), j.Reason, string(j.Status), j.AttachmentPath, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return justification.Justification{}, fmt.Errorf("failed to insert justification: %w", err)
	}
	return j, nil
}

// GetByID implements justification.JustificationRepository.
func (r *justificationRepository) GetByID(ctx context.Context, id string) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)
	return scanJustification(q.QueryRow(ctx, `SELECT `+justificationColumns+justificationFrom+` WHERE j.id = $1`, id))
}

// UpdateDecision implements justification.JustificationRepository.
func (r *justificationRepository) UpdateDecision(ctx context.Context, j justification.Justification) (justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE justifications
		SET status = $1, reason = $2, approved_by = $3, approved_at = $4, updated_at = $5
		WHERE id = $6 AND status = $7
	`
	tag, err := q.Exec(ctx, query, string(j.Status), j.Reason, j.ApprovedBy, j.ApprovedAt, j.UpdatedAt, j.ID, string(justification.StatusPending))
	if err != nil {
		return justification.Justification{}, fmt.Errorf("failed to update justification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return justification.Justification{}, justification.ErrAlreadyProcessed
	}
	return j, nil
}

// List implements justification.JustificationRepository. filter must already be validated.
func (r *justificationRepository) List(ctx context.Context, filter justification.ListFilter) ([]justification.Justification, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conds []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.EmployeeID != nil {
		add("j.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.StartDate != nil {
		add("j.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("j.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil {
		add("j.status = $%d", *filter.Status)
	}
	if filter.Type != nil {
		add("j.type = $%d", *filter.Type)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+justificationFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count justifications: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY j.date DESC, j.created_at DESC LIMIT $%d OFFSET $%d`,
		justificationColumns, justificationFrom, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list justifications: %w", err)
	}
	items, err := collectJustifications(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Find implements justification.JustificationRepository.
func (r *justificationRepository) Find(ctx context.Context, jq justification.Query) ([]justification.Justification, error) {
	q := GetQuerier(ctx, r.db)

	conds := []string{"j.date >= $1", "j.date <= $2"}
	args := []interface{}{jq.StartDate, jq.EndDate}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if jq.EmployeeID != nil {
		add("j.employee_id = $%d", *jq.EmployeeID)
	}
	if jq.WorkSiteID != nil {
		add("e.work_site_id = $%d", *jq.WorkSiteID)
	}
	if jq.Status != nil {
		add("j.status = $%d", string(*jq.Status))
	}
	if jq.Type != nil {
		add("j.type = $%d", string(*jq.Type))
	}

	query := `SELECT ` + justificationColumns + justificationFrom + ` WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY j.date DESC`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find justifications: %w", err)
	}
	return collectJustifications(rows)
}
