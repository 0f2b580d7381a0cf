package backupsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/livez")
}

// GetReadiness checks if the service and its database are ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/readyz")
}

func (c *SDKClient) getHealth(ctx context.Context, path string) (*HealthResponse, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil, false)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(body, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetMetrics returns the Prometheus exposition text.
func (c *SDKClient) GetMetrics(ctx context.Context) (string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/metrics", nil, nil, false)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
