package sqlite

import (
	"context"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store/drivers/sqlite/gen"
)

type backupsRepo struct {
	q *gen.Queries
}

func (r *backupsRepo) CreateBackup(ctx context.Context, b domain.Backup) (int64, error) {
	return r.q.CreateBackup(ctx, gen.CreateBackupParams{
		TenantID:   b.TenantID,
		DataType:   b.DataType,
		BackupType: b.BackupType,
		BackupData: string(b.Data),
		CreatedAt:  utc(b.CreatedAt),
	})
}

func (r *backupsRepo) GetBackupByID(ctx context.Context, id int64) (domain.Backup, error) {
	row, err := r.q.GetBackupByID(ctx, id)
	if err != nil {
		return domain.Backup{}, mapNotFound(err)
	}
	return mapBackup(row), nil
}

func (r *backupsRepo) ListBackupSummaries(ctx context.Context) ([]domain.BackupSummary, error) {
	rows, err := r.q.ListBackupSummaries(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BackupSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapBackupSummary(row))
	}
	return out, nil
}
