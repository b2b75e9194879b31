package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stridelabs/coachd/internal/core"
)

type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) AddEvent(ctx context.Context, ev core.AuditEvent) error {
	query := `INSERT INTO audit_events (correlation_id, event_type, operation, status, duration_ms, issues)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ev.CorrelationID, ev.EventType, ev.Operation, ev.Status, ev.DurationMs, string(ev.Issues))
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}
