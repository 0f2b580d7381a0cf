package sqlite

import (
	"context"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store/drivers/sqlite/gen"
)

type auditLogsRepo struct {
	q *gen.Queries
}

func (r *auditLogsRepo) CreateAuditLog(ctx context.Context, l domain.AuditLog) (int64, error) {
	return r.q.CreateAuditLog(ctx, gen.CreateAuditLogParams{
		EventType:  l.EventType,
		ResourceID: mapStringNull(l.ResourceID),
		Event:      string(l.Event),
		CreatedAt:  utc(l.CreatedAt),
	})
}

func (r *auditLogsRepo) CountAuditLogs(ctx context.Context) (int64, error) {
	return r.q.CountAuditLogs(ctx)
}
