package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
	"github.com/aussiebroadwan/entrabackup/pkg/graph"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

const (
	// SubscriptionResource is the directory collection watched for changes.
	SubscriptionResource = "users"

	// SubscriptionChangeTypes lists the changes notifications are sent for.
	SubscriptionChangeTypes = "created,updated,deleted"

	// SubscriptionLifetime is how long a new subscription stays registered.
	SubscriptionLifetime = 24 * time.Hour
)

// SubscriptionService registers change notification subscriptions and owns
// the clientState secret incoming notifications are checked against.
type SubscriptionService struct {
	Store           store.Store
	Tokens          TokenSource
	Client          SubscriptionClient
	NotificationURL string

	// Now defaults to time.Now.
	Now func() time.Time

	mu      sync.RWMutex
	current string
}

// Restore loads the secret of the newest unexpired subscription so
// notifications keep verifying across restarts.
func (s *SubscriptionService) Restore(ctx context.Context) error {
	sub, err := s.Store.Subscriptions().GetLatestActiveSubscription(ctx, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return &StorageError{Op: "load subscription", Err: err}
	}

	s.setCurrent(sub.ClientState)
	slogx.FromContext(ctx).Info("restored subscription secret",
		"subscription_id", sub.ID,
		"expires_at", sub.ExpiresAt,
	)
	return nil
}

// CreateSubscription registers a subscription for user changes under a
// fresh secret and returns the provider's response.
//
// The secret becomes current before the provider is called, since Graph may
// deliver notifications before its response arrives.
func (s *SubscriptionService) CreateSubscription(ctx context.Context) (json.RawMessage, error) {
	log := slogx.FromContext(ctx)

	if s.NotificationURL == "" {
		return nil, ErrNotificationURLMissing
	}

	secret := uuid.NewString()
	s.setCurrent(secret)

	token, err := s.Tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(SubscriptionLifetime)
	raw, err := s.Client.CreateSubscription(ctx, token, graph.SubscriptionRequest{
		ChangeType:         SubscriptionChangeTypes,
		NotificationURL:    s.NotificationURL,
		Resource:           SubscriptionResource,
		ExpirationDateTime: expiresAt.Format(time.RFC3339),
		ClientState:        secret,
	})
	if err != nil {
		log.Error("subscription creation failed", "error", err)
		return nil, err
	}

	var created graph.Subscription
	if err := json.Unmarshal(raw, &created); err != nil || created.ID == "" {
		log.Warn("subscription response has no id; not persisted")
		return raw, nil
	}
	if !created.ExpirationDateTime.IsZero() {
		expiresAt = created.ExpirationDateTime
	}

	// The subscription already exists upstream and the secret is current, so
	// a persistence failure is logged rather than returned.
	err = s.Store.Subscriptions().CreateSubscription(ctx, domain.Subscription{
		ID:              created.ID,
		ClientState:     secret,
		Resource:        SubscriptionResource,
		ChangeType:      SubscriptionChangeTypes,
		NotificationURL: s.NotificationURL,
		ExpiresAt:       expiresAt,
		CreatedAt:       now,
	})
	if err != nil {
		log.Error("failed to persist subscription", "subscription_id", created.ID, "error", err)
		return raw, nil
	}

	log.Info("subscription created", "subscription_id", created.ID, "expires_at", expiresAt)
	return raw, nil
}

// ExpectedClientState returns the secret a notification for subscriptionID
// must carry: the persisted secret of that subscription while it is active,
// otherwise the current secret. An empty result means nothing can verify.
func (s *SubscriptionService) ExpectedClientState(ctx context.Context, subscriptionID string) string {
	if subscriptionID != "" {
		sub, err := s.Store.Subscriptions().GetSubscriptionByID(ctx, subscriptionID)
		switch {
		case err == nil && sub.Active(s.now()):
			return sub.ClientState
		case err != nil && !errors.Is(err, store.ErrNotFound):
			slogx.FromContext(ctx).Warn("subscription lookup failed", "subscription_id", subscriptionID, "error", err)
		}
	}
	return s.Current()
}

// Current returns the most recently generated or restored secret.
func (s *SubscriptionService) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// DeleteAll removes every subscription the application owns upstream and
// returns how many deletions succeeded.
func (s *SubscriptionService) DeleteAll(ctx context.Context) (int, error) {
	log := slogx.FromContext(ctx)

	token, err := s.Tokens.AccessToken(ctx)
	if err != nil {
		return 0, err
	}

	subs, err := s.Client.ListSubscriptions(ctx, token)
	if err != nil {
		return 0, err
	}
	if len(subs) == 0 {
		return 0, nil
	}

	ids := make([]string, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ID
	}

	deleted, err := s.Client.DeleteSubscriptions(ctx, token, ids)

	// Rows whose upstream deletion failed are kept along with their secret.
	for _, id := range deleted {
		err := s.Store.Subscriptions().DeleteSubscription(ctx, id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return len(deleted), &StorageError{Op: "delete subscription", Err: err}
		}
	}

	if err != nil {
		log.Error("subscription deletion aborted", "deleted", len(deleted), "error", err)
		return len(deleted), err
	}

	log.Info("subscriptions deleted", "deleted", len(deleted), "total", len(ids))
	return len(deleted), nil
}

func (s *SubscriptionService) setCurrent(secret string) {
	s.mu.Lock()
	s.current = secret
	s.mu.Unlock()
}

func (s *SubscriptionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
