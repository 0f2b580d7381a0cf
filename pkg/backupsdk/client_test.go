package backupsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *SDKClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewSDKClient(srv.URL+"/", "operator", "password")
}

func TestRestoreUsersParsesCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "operator", user)
		require.Equal(t, "password", pass)
		require.Equal(t, "/api/restore-users/7", r.URL.Path)
		_, _ = io.WriteString(w, "Restored 42 users.")
	})

	n, err := c.RestoreUsers(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 42, n)
}

func TestErrorsCarryStatusAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "Backup not found.\n")
	})

	_, err := c.RestoreUsers(context.Background(), 1)
	require.True(t, IsStatus(err, http.StatusNotFound))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Backup not found.", apiErr.Message)
}

func TestValidateWebhookIsUnauthenticated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		require.False(t, ok)
		_, _ = io.WriteString(w, r.URL.Query().Get("validationToken"))
	})

	echoed, err := c.ValidateWebhook(context.Background(), "a b&c")
	require.NoError(t, err)
	require.Equal(t, "a b&c", echoed)
}

func TestSendNotificationOmitsAbsentFields(t *testing.T) {
	var got map[string][]map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, "Webhook processed.")
	})

	state := "secret"
	require.NoError(t, c.SendNotification(context.Background(), Notification{
		Value: []NotificationEvent{{ClientState: &state, Resource: "Users/1"}},
	}))

	require.Len(t, got["value"], 1)
	require.Equal(t, "secret", got["value"][0]["clientState"])
	require.NotContains(t, got["value"][0], "changeType")
}
