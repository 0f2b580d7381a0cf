package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/entrabackup/internal/backup/store/drivers/sqlite"
	"github.com/aussiebroadwan/entrabackup/pkg/graph"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

type fakeTokens struct {
	calls int
	err   error
}

func (f *fakeTokens) AccessToken(context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "tok", nil
}

type fakeDirectory struct {
	users   []json.RawMessage
	listErr error

	restoreCalls int
	restored     []json.RawMessage
	restoreN     int
	restoreErr   error
}

func (f *fakeDirectory) ListUsers(_ context.Context, token string) ([]json.RawMessage, error) {
	if token != "tok" {
		return nil, &graph.UpstreamError{Op: "list users", StatusCode: 401}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeDirectory) Restore(_ context.Context, _ string, users []json.RawMessage) (int, error) {
	f.restoreCalls++
	f.restored = users
	if f.restoreErr != nil {
		return f.restoreN, f.restoreErr
	}
	return len(users), nil
}

type fakeSubscriptionClient struct {
	requests []graph.SubscriptionRequest
	response json.RawMessage
	err      error
	onCreate func(req graph.SubscriptionRequest)

	subs       []graph.Subscription
	deletedIDs []string
	failDelete map[string]bool
}

func (f *fakeSubscriptionClient) CreateSubscription(_ context.Context, _ string, req graph.SubscriptionRequest) (json.RawMessage, error) {
	f.requests = append(f.requests, req)
	if f.onCreate != nil {
		f.onCreate(req)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeSubscriptionClient) ListSubscriptions(context.Context, string) ([]graph.Subscription, error) {
	return f.subs, nil
}

func (f *fakeSubscriptionClient) DeleteSubscriptions(_ context.Context, _ string, ids []string) ([]string, error) {
	var gone []string
	for _, id := range ids {
		if f.failDelete[id] {
			continue
		}
		gone = append(gone, id)
	}
	f.deletedIDs = append(f.deletedIDs, gone...)
	return gone, nil
}
