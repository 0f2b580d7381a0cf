package backupsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
)

var deletedPattern = regexp.MustCompile(`^Deleted (\d+) subscriptions\.$`)

// CreateSubscription registers a user change subscription and returns the
// provider's response.
func (c *SDKClient) CreateSubscription(ctx context.Context) (json.RawMessage, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/create-subscription", nil, nil, true)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// DeleteSubscriptions removes every subscription the service owns upstream.
func (c *SDKClient) DeleteSubscriptions(ctx context.Context) (int, error) {
	body, err := c.doRequest(ctx, http.MethodDelete, "/api/subscriptions", nil, nil, true)
	if err != nil {
		return 0, err
	}

	m := deletedPattern.FindSubmatch(body)
	if m == nil {
		return 0, fmt.Errorf("unexpected delete response: %q", body)
	}
	return strconv.Atoi(string(m[1]))
}
