package service

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/entrabackup/pkg/graph"
)

// TokenSource hands out bearer tokens for the directory API.
// *graph.TokenCache satisfies it.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Directory is the subset of *graph.Client used for backup and restore.
type Directory interface {
	ListUsers(ctx context.Context, token string) ([]json.RawMessage, error)
	Restore(ctx context.Context, token string, users []json.RawMessage) (int, error)
}

// SubscriptionClient is the subset of *graph.Client used to manage change
// notification subscriptions.
type SubscriptionClient interface {
	CreateSubscription(ctx context.Context, token string, sub graph.SubscriptionRequest) (json.RawMessage, error)
	ListSubscriptions(ctx context.Context, token string) ([]graph.Subscription, error)
	DeleteSubscriptions(ctx context.Context, token string, ids []string) ([]string, error)
}

var (
	_ TokenSource        = (*graph.TokenCache)(nil)
	_ Directory          = (*graph.Client)(nil)
	_ SubscriptionClient = (*graph.Client)(nil)
)
