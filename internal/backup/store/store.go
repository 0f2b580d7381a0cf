package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are reached through methods so a Tx-scoped
// store can hand out repositories bound to the transaction.
type Store interface {
	Backups() Backups
	AuditLogs() AuditLogs
	Subscriptions() Subscriptions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Backups interface {
	// CreateBackup inserts a snapshot and returns its assigned id.
	CreateBackup(ctx context.Context, b domain.Backup) (int64, error)

	// GetBackupByID returns a snapshot including its payload.
	GetBackupByID(ctx context.Context, id int64) (domain.Backup, error)

	// ListBackupSummaries returns every snapshot ordered by id, without
	// reading the payload column.
	ListBackupSummaries(ctx context.Context) ([]domain.BackupSummary, error)
}

type AuditLogs interface {
	// CreateAuditLog inserts an audit record and returns its assigned id.
	CreateAuditLog(ctx context.Context, l domain.AuditLog) (int64, error)

	// CountAuditLogs returns the number of audit records.
	CountAuditLogs(ctx context.Context) (int64, error)
}

type Subscriptions interface {
	// CreateSubscription stores a subscription registered with the provider.
	CreateSubscription(ctx context.Context, s domain.Subscription) error

	// GetSubscriptionByID returns a subscription by its provider id.
	GetSubscriptionByID(ctx context.Context, id string) (domain.Subscription, error)

	// GetLatestActiveSubscription returns the most recently created
	// subscription that has not expired at now.
	GetLatestActiveSubscription(ctx context.Context, now time.Time) (domain.Subscription, error)

	// DeleteSubscription removes a subscription by id.
	DeleteSubscription(ctx context.Context, id string) error

	// DeleteExpiredSubscriptions is housekeeping; it returns the number of
	// rows removed.
	DeleteExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error)
}
