package sqlite_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store/drivers/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestBackups(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	payload := json.RawMessage(`[{"id":"1","userPrincipalName":"a@example.com"},{"id":"2"}]`)

	id1, err := st.Backups().CreateBackup(ctx, domain.Backup{
		TenantID:   "tenant-1",
		DataType:   domain.DataTypeUser,
		BackupType: domain.BackupTypeEntra,
		Data:       payload,
		CreatedAt:  created,
	})
	require.NoError(t, err)

	id2, err := st.Backups().CreateBackup(ctx, domain.Backup{
		TenantID:   "tenant-1",
		DataType:   domain.DataTypeUser,
		BackupType: domain.BackupTypeEntra,
		Data:       json.RawMessage(`[]`),
		CreatedAt:  created.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	t.Run("get by id returns payload", func(t *testing.T) {
		b, err := st.Backups().GetBackupByID(ctx, id1)
		require.NoError(t, err)
		require.Equal(t, "tenant-1", b.TenantID)
		require.Equal(t, domain.DataTypeUser, b.DataType)
		require.Equal(t, domain.BackupTypeEntra, b.BackupType)
		require.JSONEq(t, string(payload), string(b.Data))
		require.True(t, created.Equal(b.CreatedAt))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := st.Backups().GetBackupByID(ctx, 9999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("summaries ordered by id", func(t *testing.T) {
		summaries, err := st.Backups().ListBackupSummaries(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		require.Equal(t, id1, summaries[0].ID)
		require.Equal(t, id2, summaries[1].ID)
		require.True(t, created.Add(time.Hour).Equal(summaries[1].CreatedAt))
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := st.Backups().CreateBackup(ctx, domain.Backup{
			TenantID: "t", DataType: "user", BackupType: "entra",
			Data: json.RawMessage(`[{`), CreatedAt: created,
		})
		require.Error(t, err)
	})
}

func TestListBackupSummariesEmpty(t *testing.T) {
	summaries, err := newTestStore(t).Backups().ListBackupSummaries(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summaries)
	require.Empty(t, summaries)
}

func TestAuditLogsRollBackWithTx(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	entry := domain.AuditLog{
		EventType:  "user.updated",
		ResourceID: "Users/abc",
		Event:      json.RawMessage(`{"changeType":"updated"}`),
		CreatedAt:  time.Now(),
	}

	boom := errors.New("boom")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.AuditLogs().CreateAuditLog(ctx, entry)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := st.AuditLogs().CountAuditLogs(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	err = st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.AuditLogs().CreateAuditLog(ctx, entry)
		if err != nil {
			return err
		}
		entry.ResourceID = ""
		entry.EventType = domain.EventTypeUnknown
		_, err = tx.AuditLogs().CreateAuditLog(ctx, entry)
		return err
	})
	require.NoError(t, err)

	n, err = st.AuditLogs().CountAuditLogs(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestNestedTxNotSupported(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.Error(t, err)
}

func TestSubscriptions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sub := func(id string, created time.Time, ttl time.Duration) domain.Subscription {
		return domain.Subscription{
			ID:              id,
			ClientState:     "state-" + id,
			Resource:        "users",
			ChangeType:      "created,updated,deleted",
			NotificationURL: "https://example.com/api/webhook",
			ExpiresAt:       created.Add(ttl),
			CreatedAt:       created,
		}
	}

	require.NoError(t, st.Subscriptions().CreateSubscription(ctx, sub("old", now.Add(-48*time.Hour), 24*time.Hour)))
	require.NoError(t, st.Subscriptions().CreateSubscription(ctx, sub("a", now.Add(-2*time.Hour), 24*time.Hour)))
	require.NoError(t, st.Subscriptions().CreateSubscription(ctx, sub("b", now.Add(-time.Hour), 24*time.Hour)))

	t.Run("duplicate id", func(t *testing.T) {
		err := st.Subscriptions().CreateSubscription(ctx, sub("a", now, time.Hour))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := st.Subscriptions().GetSubscriptionByID(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, "state-a", got.ClientState)
		require.True(t, got.Active(now))

		_, err = st.Subscriptions().GetSubscriptionByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("latest active", func(t *testing.T) {
		got, err := st.Subscriptions().GetLatestActiveSubscription(ctx, now)
		require.NoError(t, err)
		require.Equal(t, "b", got.ID)

		_, err = st.Subscriptions().GetLatestActiveSubscription(ctx, now.Add(48*time.Hour))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete expired", func(t *testing.T) {
		n, err := st.Subscriptions().DeleteExpiredSubscriptions(ctx, now)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		_, err = st.Subscriptions().GetSubscriptionByID(ctx, "old")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, st.Subscriptions().DeleteSubscription(ctx, "a"))
		require.ErrorIs(t, st.Subscriptions().DeleteSubscription(ctx, "a"), store.ErrNotFound)
	})
}
