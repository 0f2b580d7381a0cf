package backup_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	g := newFakeGraph(t)
	baseURL, cleanup := setupBackupContainer(t, g, containerOptions{})
	defer cleanup()

	client := newOperatorClient(baseURL)
	ctx := context.Background()

	t.Run("livez", func(t *testing.T) {
		health, err := client.GetLiveness(ctx)
		assertHealthy(t, health, err)
		require.NotEmpty(t, health.Uptime)
		require.Nil(t, health.Checks)
	})

	t.Run("readyz", func(t *testing.T) {
		health, err := client.GetReadiness(ctx)
		assertHealthy(t, health, err)
		require.NotNil(t, health.Checks)
		require.Equal(t, "ok", health.Checks.Database)
	})

	t.Run("metrics", func(t *testing.T) {
		text, err := client.GetMetrics(ctx)
		require.NoError(t, err)
		require.Contains(t, text, "http_requests_total")
	})

	t.Run("swagger", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/swagger/doc.json")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestOperatorEndpointsRequireCredentials(t *testing.T) {
	g := newFakeGraph(t)
	baseURL, cleanup := setupBackupContainer(t, g, containerOptions{})
	defer cleanup()

	ctx := context.Background()

	anonymous := newOperatorClient(baseURL)
	anonymous.Username, anonymous.Password = "", ""
	_, err := anonymous.ListBackups(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "missing credentials")

	wrong := newOperatorClient(baseURL)
	wrong.Password = "not-the-password"
	_, err = wrong.BackupUsers(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "wrong password")
	_, err = wrong.RestoreUsers(ctx, 1)
	assertStatus(t, err, http.StatusUnauthorized, "wrong password on restore")
	_, err = wrong.CreateSubscription(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "wrong password on subscription")
}
