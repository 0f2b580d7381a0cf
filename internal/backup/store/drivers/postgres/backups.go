package postgres

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
)

type backupsRepo struct {
	q querier
}

func (r *backupsRepo) CreateBackup(ctx context.Context, b domain.Backup) (int64, error) {
	var id int64
	err := r.q.QueryRowContext(ctx, `
		insert into backups (tenant_id, data_type, backup_type, backup_data, created_at)
		values ($1, $2, $3, $4::jsonb, $5)
		returning id
	`, b.TenantID, b.DataType, b.BackupType, string(b.Data), b.CreatedAt.UTC()).Scan(&id)
	return id, err
}

func (r *backupsRepo) GetBackupByID(ctx context.Context, id int64) (domain.Backup, error) {
	var b domain.Backup
	var data []byte
	err := r.q.QueryRowContext(ctx, `
		select id, tenant_id, data_type, backup_type, backup_data, created_at
		from backups
		where id = $1
	`, id).Scan(&b.ID, &b.TenantID, &b.DataType, &b.BackupType, &data, &b.CreatedAt)
	if err != nil {
		return domain.Backup{}, mapNotFound(err)
	}
	b.Data = json.RawMessage(data)
	b.CreatedAt = b.CreatedAt.UTC()
	return b, nil
}

func (r *backupsRepo) ListBackupSummaries(ctx context.Context) ([]domain.BackupSummary, error) {
	rows, err := r.q.QueryContext(ctx, `
		select id, tenant_id, data_type, created_at, backup_type
		from backups
		order by id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.BackupSummary{}
	for rows.Next() {
		var s domain.BackupSummary
		if err := rows.Scan(&s.ID, &s.TenantID, &s.DataType, &s.CreatedAt, &s.BackupType); err != nil {
			return nil, err
		}
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
