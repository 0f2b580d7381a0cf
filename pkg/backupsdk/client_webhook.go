package backupsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ValidateWebhook performs the subscription validation handshake and returns
// the echoed token.
func (c *SDKClient) ValidateWebhook(ctx context.Context, token string) (string, error) {
	path := "/api/webhook?" + url.Values{"validationToken": {token}}.Encode()
	body, err := c.doRequest(ctx, http.MethodPost, path, nil, map[string]string{
		"Content-Type": "text/plain",
	}, false)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// SendNotification posts a change notification as Graph would.
func (c *SDKClient) SendNotification(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	_, err = c.doRequest(ctx, http.MethodPost, "/api/webhook", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	}, false)
	return err
}
