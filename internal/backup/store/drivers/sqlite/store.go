package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store/drivers/sqlite/gen"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" opens its own empty database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Safe to call after commit; covers panics and early returns.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Backups() store.Backups             { return &backupsRepo{q: s.q} }
func (s *Store) AuditLogs() store.AuditLogs         { return &auditLogsRepo{q: s.q} }
func (s *Store) Subscriptions() store.Subscriptions { return &subscriptionsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapBackup(row gen.Backup) domain.Backup {
	return domain.Backup{
		ID:         row.ID,
		TenantID:   row.TenantID,
		DataType:   row.DataType,
		BackupType: row.BackupType,
		Data:       json.RawMessage(row.BackupData),
		CreatedAt:  row.CreatedAt.UTC(),
	}
}

func mapBackupSummary(row gen.ListBackupSummariesRow) domain.BackupSummary {
	return domain.BackupSummary{
		ID:         row.ID,
		TenantID:   row.TenantID,
		DataType:   row.DataType,
		CreatedAt:  row.CreatedAt.UTC(),
		BackupType: row.BackupType,
	}
}

func mapSubscription(row gen.Subscription) domain.Subscription {
	return domain.Subscription{
		ID:              row.ID,
		ClientState:     row.ClientState,
		Resource:        row.Resource,
		ChangeType:      row.ChangeType,
		NotificationURL: row.NotificationUrl,
		ExpiresAt:       row.ExpiresAt.UTC(),
		CreatedAt:       row.CreatedAt.UTC(),
	}
}

// utc normalises timestamps before they are written so the text encoding
// sorts chronologically.
func utc(t time.Time) time.Time { return t.UTC() }
