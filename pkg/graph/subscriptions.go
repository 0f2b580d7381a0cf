package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// CreateSubscription registers a change notification subscription and
// returns the provider's response verbatim.
func (c *Client) CreateSubscription(ctx context.Context, token string, sub SubscriptionRequest) (json.RawMessage, error) {
	body, err := c.do(ctx, "create subscription", token, http.MethodPost, c.url("/subscriptions"), sub)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &UpstreamError{Op: "create subscription", Body: string(body), Err: errInvalidJSON}
	}
	return json.RawMessage(body), nil
}

// ListSubscriptions returns every subscription owned by the application.
func (c *Client) ListSubscriptions(ctx context.Context, token string) ([]Subscription, error) {
	const op = "list subscriptions"

	subs := []Subscription{}
	next := c.url("/subscriptions")
	for next != "" {
		body, err := c.do(ctx, op, token, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		var p page[Subscription]
		if err := decode(op, body, &p); err != nil {
			return nil, err
		}
		subs = append(subs, p.Value...)
		next = p.NextLink
	}
	return subs, nil
}

// DeleteSubscriptions removes the given subscriptions through /$batch and
// returns the ids whose deletion succeeded. Like Restore, a failed batch call
// stops the run and reports the ids deleted so far.
func (c *Client) DeleteSubscriptions(ctx context.Context, token string, ids []string) ([]string, error) {
	log := slogx.FromContext(ctx)

	deleted := []string{}
	for start := 0; start < len(ids); start += BatchSize {
		chunk := ids[start:min(start+BatchSize, len(ids))]

		reqs := make([]BatchSubRequest, len(chunk))
		for i, id := range chunk {
			reqs[i] = BatchSubRequest{
				ID:     strconv.Itoa(i),
				Method: http.MethodDelete,
				URL:    "/subscriptions/" + id,
			}
		}

		responses, err := c.sendBatch(ctx, "delete subscriptions batch", token, reqs)
		if err != nil {
			return deleted, err
		}

		for _, resp := range responses {
			idx, err := strconv.Atoi(resp.ID)
			subID := ""
			if err == nil && idx >= 0 && idx < len(chunk) {
				subID = chunk[idx]
			}
			if resp.Status >= 200 && resp.Status < 300 && subID != "" {
				deleted = append(deleted, subID)
				continue
			}
			log.Warn("subscription deletion failed", "subscription_id", subID, "status", resp.Status)
		}
	}
	return deleted, nil
}
