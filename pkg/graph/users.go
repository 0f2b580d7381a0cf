package graph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// ListUsers returns every user in the directory, following @odata.nextLink
// until the last page. Page order and order within a page are preserved.
// Any failed page aborts the whole listing; no partial result is returned.
func (c *Client) ListUsers(ctx context.Context, token string) ([]json.RawMessage, error) {
	const op = "list users"
	log := slogx.FromContext(ctx)

	users := []json.RawMessage{}
	next := c.url("/users")
	pages := 0

	for next != "" {
		body, err := c.do(ctx, op, token, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		var p page[json.RawMessage]
		if err := decode(op, body, &p); err != nil {
			return nil, err
		}
		if p.Value == nil {
			return nil, &UpstreamError{Op: op, Err: errors.New("response has no value array")}
		}

		users = append(users, p.Value...)
		next = p.NextLink
		pages++
	}

	log.Info("listed directory users", "count", len(users), "pages", pages)
	return users, nil
}
