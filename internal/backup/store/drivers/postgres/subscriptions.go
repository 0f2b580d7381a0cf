package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
)

const subscriptionColumns = `id, client_state, resource, change_type, notification_url, expires_at, created_at`

type subscriptionsRepo struct {
	q querier
}

func (r *subscriptionsRepo) CreateSubscription(ctx context.Context, s domain.Subscription) error {
	_, err := r.q.ExecContext(ctx, `
		insert into subscriptions (`+subscriptionColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7)
	`, s.ID, s.ClientState, s.Resource, s.ChangeType, s.NotificationURL, s.ExpiresAt.UTC(), s.CreatedAt.UTC())
	return mapUniqueViolation(err)
}

func (r *subscriptionsRepo) GetSubscriptionByID(ctx context.Context, id string) (domain.Subscription, error) {
	row := r.q.QueryRowContext(ctx, `
		select `+subscriptionColumns+`
		from subscriptions
		where id = $1
	`, id)
	return scanSubscription(row)
}

func (r *subscriptionsRepo) GetLatestActiveSubscription(ctx context.Context, now time.Time) (domain.Subscription, error) {
	row := r.q.QueryRowContext(ctx, `
		select `+subscriptionColumns+`
		from subscriptions
		where expires_at > $1
		order by created_at desc
		limit 1
	`, now.UTC())
	return scanSubscription(row)
}

func (r *subscriptionsRepo) DeleteSubscription(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `delete from subscriptions where id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *subscriptionsRepo) DeleteExpiredSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `delete from subscriptions where expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanSubscription(row *sql.Row) (domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(&s.ID, &s.ClientState, &s.Resource, &s.ChangeType, &s.NotificationURL, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return domain.Subscription{}, mapNotFound(err)
	}
	s.ExpiresAt = s.ExpiresAt.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}
