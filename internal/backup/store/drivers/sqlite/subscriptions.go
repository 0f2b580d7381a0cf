package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store/drivers/sqlite/gen"
)

type subscriptionsRepo struct {
	q *gen.Queries
}

func (r *subscriptionsRepo) CreateSubscription(ctx context.Context, s domain.Subscription) error {
	err := r.q.CreateSubscription(ctx, gen.CreateSubscriptionParams{
		ID:              s.ID,
		ClientState:     s.ClientState,
		Resource:        s.Resource,
		ChangeType:      s.ChangeType,
		NotificationUrl: s.NotificationURL,
		ExpiresAt:       utc(s.ExpiresAt),
		CreatedAt:       utc(s.CreatedAt),
	})
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *subscriptionsRepo) GetSubscriptionByID(ctx context.Context, id string) (domain.Subscription, error) {
	row, err := r.q.GetSubscriptionByID(ctx, id)
	if err != nil {
		return domain.Subscription{}, mapNotFound(err)
	}
	return mapSubscription(row), nil
}

func (r *subscriptionsRepo) GetLatestActiveSubscription(ctx context.Context, now time.Time) (domain.Subscription, error) {
	row, err := r.q.GetLatestActiveSubscription(ctx, utc(now))
	if err != nil {
		return domain.Subscription{}, mapNotFound(err)
	}
	return mapSubscription(row), nil
}

func (r *subscriptionsRepo) DeleteSubscription(ctx context.Context, id string) error {
	n, err := r.q.DeleteSubscription(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *subscriptionsRepo) DeleteExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredSubscriptions(ctx, utc(now))
}
