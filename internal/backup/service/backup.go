package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
	"github.com/aussiebroadwan/entrabackup/pkg/metricsx"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// BackupService snapshots the user directory and replays snapshots back
// into it.
type BackupService struct {
	Store     store.Store
	Tokens    TokenSource
	Directory Directory
	TenantID  string
	Metrics   *metricsx.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

// BackupUsers lists every directory user and stores them as a new backup.
// The listed users are returned in directory order.
func (s *BackupService) BackupUsers(ctx context.Context) ([]json.RawMessage, error) {
	log := slogx.FromContext(ctx)

	users, err := s.backupUsers(ctx)
	s.Metrics.BackupCompleted(len(users), err)
	if err != nil {
		log.Error("backup failed", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *BackupService) backupUsers(ctx context.Context) ([]json.RawMessage, error) {
	token, err := s.Tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.Directory.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(users)
	if err != nil {
		return nil, err
	}

	id, err := s.Store.Backups().CreateBackup(ctx, domain.Backup{
		TenantID:   s.TenantID,
		DataType:   domain.DataTypeUser,
		BackupType: domain.BackupTypeEntra,
		Data:       data,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return nil, &StorageError{Op: "save backup", Err: err}
	}

	slogx.FromContext(ctx).Info("backup saved", "backup_id", id, "users", len(users))
	return users, nil
}

// ListBackups returns a summary of every stored backup, oldest first.
func (s *BackupService) ListBackups(ctx context.Context) ([]domain.BackupSummary, error) {
	summaries, err := s.Store.Backups().ListBackupSummaries(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list backups", Err: err}
	}
	return summaries, nil
}

// RestoreUsers recreates the users of backup id and returns how many were
// created. The backup is loaded before any token is requested, so an unknown
// id never reaches the directory.
func (s *BackupService) RestoreUsers(ctx context.Context, id int64) (int, error) {
	log := slogx.FromContext(ctx).With("backup_id", id)

	b, err := s.Store.Backups().GetBackupByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrBackupNotFound
	}
	if err != nil {
		return 0, &StorageError{Op: "load backup", Err: err}
	}

	var users []json.RawMessage
	if err := json.Unmarshal(b.Data, &users); err != nil || users == nil {
		return 0, ErrInvalidBackupData
	}

	token, err := s.Tokens.AccessToken(ctx)
	if err != nil {
		return 0, err
	}

	restored, err := s.Directory.Restore(slogx.WithContext(ctx, log), token, users)
	s.Metrics.UsersRestored(restored)
	if err != nil {
		log.Error("restore aborted", "restored", restored, "error", err)
		return restored, err
	}

	log.Info("restore completed", "restored", restored, "total", len(users))
	return restored, nil
}

func (s *BackupService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
