package postgres

import (
	"context"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
)

type auditLogsRepo struct {
	q querier
}

func (r *auditLogsRepo) CreateAuditLog(ctx context.Context, l domain.AuditLog) (int64, error) {
	var id int64
	err := r.q.QueryRowContext(ctx, `
		insert into audit_logs (event_type, resource_id, event, created_at)
		values ($1, $2, $3::jsonb, $4)
		returning id
	`, l.EventType, nullIfEmpty(l.ResourceID), string(l.Event), l.CreatedAt.UTC()).Scan(&id)
	return id, err
}

func (r *auditLogsRepo) CountAuditLogs(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `select count(*) from audit_logs`).Scan(&n)
	return n, err
}
