package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for _, sub := range []domain.Subscription{
		{ID: "expired", ExpiresAt: testNow.Add(-time.Minute)},
		{ID: "active", ExpiresAt: testNow.Add(time.Hour)},
	} {
		sub.ClientState, sub.Resource, sub.ChangeType = "s", "users", SubscriptionChangeTypes
		sub.NotificationURL, sub.CreatedAt = "https://example.com", testNow.Add(-time.Hour)
		require.NoError(t, st.Subscriptions().CreateSubscription(ctx, sub))
	}

	hk := NewHousekeepingService(st, slog.New(slog.DiscardHandler), 0)
	hk.Now = func() time.Time { return testNow }
	require.Equal(t, time.Hour, hk.Interval)

	require.Equal(t, int64(1), hk.Cleanup(ctx))

	_, err := st.Subscriptions().GetSubscriptionByID(ctx, "expired")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Subscriptions().GetSubscriptionByID(ctx, "active")
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	hk := NewHousekeepingService(newTestStore(t), slog.New(slog.DiscardHandler), time.Hour)
	hk.Start()
	hk.Stop()
}
