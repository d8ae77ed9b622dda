package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gruamaster/ponto-backend-go/internal/domain/timeclock"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/database"
)

type alterationRepository struct {
	db *database.DB
}

func NewAlterationRepository(db *database.DB) timeclock.AlterationRepository {
	return &alterationRepository{db: db}
}

// CreateBatch implements timeclock.AlterationRepository.
func (a *alterationRepository) CreateBatch(ctx context.Context, entries []timeclock.Alteration) error {
	if len(entries) == 0 {
		return nil
	}
	q := GetQuerier(ctx, a.db)

	valueStrings := make([]string, 0, len(entries))
	valueArgs := make([]interface{}, 0, len(entries)*8)
	for i, e := range entries {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		valueArgs = append(valueArgs, e.ID, e.RecordID, e.Field, e.OldValue, e.NewValue, e.Justification, e.ChangedBy, e.ChangedAt)
	}

	query := `
		INSERT INTO timeclock_alterations (id, record_id, field, old_value, new_value, justification, changed_by, changed_at)
		VALUES ` + strings.Join(valueStrings, ", ")

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to insert alteration history: %w", err)
	}
	return nil
}

// ListByRecord implements timeclock.AlterationRepository.
func (a *alterationRepository) ListByRecord(ctx context.Context, recordID string) ([]timeclock.Alteration, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, record_id, field, old_value, new_value, justification, changed_by, changed_at
		FROM timeclock_alterations
		WHERE record_id = $1
		ORDER BY changed_at DESC, id DESC
	`
	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alteration history: %w", err)
	}
	defer rows.Close()

	var out []timeclock.Alteration
	for rows.Next() {
		var e timeclock.Alteration
		if err := rows.Scan(&e.ID, &e.RecordID, &e.Field, &e.OldValue, &e.NewValue, &e.Justification, &e.ChangedBy, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alteration: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type approvalEventRepository struct {
	db *database.DB
}

func NewApprovalEventRepository(db *database.DB) timeclock.ApprovalEventRepository {
	return &approvalEventRepository{db: db}
}

// Append implements timeclock.ApprovalEventRepository.
func (a *approvalEventRepository) Append(ctx context.Context, ev timeclock.ApprovalEvent) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO timeclock_approval_events (id, record_id, type, actor, reason, notes, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := q.Exec(ctx, query, ev.ID, ev.RecordID, string(ev.Type), ev.Actor, ev.Reason, ev.Notes, ev.OccurredAt); err != nil {
		return fmt.Errorf("failed to append approval event: %w", err)
	}
	return nil
}

// ListByRecord implements timeclock.ApprovalEventRepository, oldest first.
func (a *approvalEventRepository) ListByRecord(ctx context.Context, recordID string) ([]timeclock.ApprovalEvent, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, record_id, type, actor, reason, notes, occurred_at
		FROM timeclock_approval_events
		WHERE record_id = $1
		ORDER BY occurred_at, id
	`
	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approval events: %w", err)
	}
	defer rows.Close()

	var out []timeclock.ApprovalEvent
	for rows.Next() {
		var ev timeclock.ApprovalEvent
		var typ string
		if err := rows.Scan(&ev.ID, &ev.RecordID, &typ, &ev.Actor, &ev.Reason, &ev.Notes, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan approval event: %w", err)
		}
		ev.Type = timeclock.EventType(typ)
		out = append(out, ev)
	}
	return out, rows.Err()
}
