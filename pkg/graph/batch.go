package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/entrabackup/pkg/cryptox"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// BatchSize is the maximum number of sub-requests Graph accepts in one
// JSON batch.
const BatchSize = 20

// Restore recreates the given user records through /$batch, BatchSize users
// per request, and returns how many sub-requests succeeded.
//
// Each recreated user is enabled, gets a mailNickname derived from its
// userPrincipalName and a disposable password that must be changed at next
// sign-in. Records without a userPrincipalName are skipped. A batch call that
// fails as a whole stops the restore: the successes counted so far are
// returned together with the *UpstreamError.
func (c *Client) Restore(ctx context.Context, token string, users []json.RawMessage) (int, error) {
	log := slogx.FromContext(ctx)

	// pending pairs each creation body with its position in users so logs
	// point at the snapshot record, not at the filtered list.
	type pending struct {
		index int
		body  CreateUserRequest
	}

	queue := make([]pending, 0, len(users))
	for i, raw := range users {
		body, err := newCreateUserRequest(raw)
		if err != nil {
			log.Warn("skipping user record", "index", i, "error", err)
			continue
		}
		queue = append(queue, pending{index: i, body: body})
	}

	restored := 0
	for start := 0; start < len(queue); start += BatchSize {
		chunk := queue[start:min(start+BatchSize, len(queue))]

		reqs := make([]BatchSubRequest, len(chunk))
		for i, p := range chunk {
			reqs[i] = BatchSubRequest{
				ID:      strconv.Itoa(i),
				Method:  http.MethodPost,
				URL:     "/users",
				Headers: map[string]string{"Content-Type": "application/json"},
				Body:    p.body,
			}
		}

		responses, err := c.sendBatch(ctx, "create users batch", token, reqs)
		if err != nil {
			log.Error("restore batch failed, aborting remaining batches",
				"first_index", chunk[0].index, "restored", restored, "error", err)
			return restored, err
		}

		for _, resp := range responses {
			if resp.Status >= 200 && resp.Status < 300 {
				restored++
				continue
			}
			attrs := []any{"id", resp.ID, "status", resp.Status, "body", string(resp.Body)}
			if n, err := strconv.Atoi(resp.ID); err == nil && n >= 0 && n < len(chunk) {
				attrs = append(attrs,
					"index", chunk[n].index,
					"user_principal_name", chunk[n].body.UserPrincipalName,
				)
			}
			log.Warn("user creation failed", attrs...)
		}
	}

	log.Info("restore finished", "requested", len(users), "restored", restored)
	return restored, nil
}

// newCreateUserRequest builds the creation body for one backed up user.
func newCreateUserRequest(raw json.RawMessage) (CreateUserRequest, error) {
	var u directoryUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return CreateUserRequest{}, fmt.Errorf("graph: decode user record: %w", err)
	}
	if u.UserPrincipalName == "" {
		return CreateUserRequest{}, ErrMissingUserPrincipalName
	}

	password, err := cryptox.GenerateBootstrapPassword()
	if err != nil {
		return CreateUserRequest{}, err
	}

	return CreateUserRequest{
		AccountEnabled:    true,
		DisplayName:       u.DisplayName,
		MailNickname:      MailNickname(u.UserPrincipalName),
		UserPrincipalName: u.UserPrincipalName,
		PasswordProfile: PasswordProfile{
			ForceChangePasswordNextSignIn: true,
			Password:                      password,
		},
	}, nil
}

// MailNickname returns the local part of a userPrincipalName, everything
// before the first '@'.
func MailNickname(upn string) string {
	local, _, _ := strings.Cut(upn, "@")
	return local
}

// sendBatch posts one JSON batch and returns its sub-responses.
func (c *Client) sendBatch(ctx context.Context, op, token string, reqs []BatchSubRequest) ([]BatchSubResponse, error) {
	body, err := c.do(ctx, op, token, http.MethodPost, c.url("/$batch"), BatchRequest{Requests: reqs})
	if err != nil {
		return nil, err
	}

	var resp BatchResponse
	if err := decode(op, body, &resp); err != nil {
		return nil, err
	}
	return resp.Responses, nil
}
