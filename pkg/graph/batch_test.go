package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// batchRecorder is a fake /$batch endpoint that records every request and
// answers each sub-request with the status returned by respond.
type batchRecorder struct {
	mu       sync.Mutex
	batches  []BatchRequest
	failCall int // 1-based batch call that fails as a whole; zero never fails
	respond  func(req BatchSubRequest) int
}

func (b *batchRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.URL.Path != "/$batch" || r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	b.batches = append(b.batches, req)

	if b.failCall == len(b.batches) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"InternalServerError"}}`))
		return
	}

	resp := BatchResponse{}
	for _, sub := range req.Requests {
		status := http.StatusCreated
		if b.respond != nil {
			status = b.respond(sub)
		}
		resp.Responses = append(resp.Responses, BatchSubResponse{ID: sub.ID, Status: status, Body: json.RawMessage(`{}`)})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func makeUsers(n int) []json.RawMessage {
	users := make([]json.RawMessage, n)
	for i := range users {
		users[i] = json.RawMessage(fmt.Sprintf(
			`{"id":"%d","displayName":"User %d","userPrincipalName":"user.%d@example.com","mail":null}`, i, i, i))
	}
	return users
}

func TestMailNickname(t *testing.T) {
	tests := map[string]string{
		"a.b@example.com":   "a.b",
		"first@sub@example": "first",
		"no-at-sign":        "no-at-sign",
		"":                  "",
	}
	for upn, want := range tests {
		require.Equal(t, want, MailNickname(upn), upn)
	}
}

func TestRestore_ChunksOfTwenty(t *testing.T) {
	rec := &batchRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	restored, err := NewClient(srv.URL, srv.Client()).Restore(context.Background(), "tok", makeUsers(45))
	require.NoError(t, err)
	require.Equal(t, 45, restored)

	require.Len(t, rec.batches, 3)
	require.Len(t, rec.batches[0].Requests, 20)
	require.Len(t, rec.batches[1].Requests, 20)
	require.Len(t, rec.batches[2].Requests, 5)

	for _, batch := range rec.batches {
		for i, sub := range batch.Requests {
			require.Equal(t, strconv.Itoa(i), sub.ID, "ids restart at zero in every batch")
			require.Equal(t, http.MethodPost, sub.Method)
			require.Equal(t, "/users", sub.URL)
			require.Equal(t, "application/json", sub.Headers["Content-Type"])
		}
	}
}

func TestRestore_BuildsCreateUserBody(t *testing.T) {
	rec := &batchRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	users := []json.RawMessage{
		json.RawMessage(`{"id":"x","displayName":"A B","userPrincipalName":"a.b@example.com","jobTitle":"Dev"}`),
	}
	_, err := NewClient(srv.URL, srv.Client()).Restore(context.Background(), "tok", users)
	require.NoError(t, err)
	require.Len(t, rec.batches, 1)

	raw, err := json.Marshal(rec.batches[0].Requests[0].Body)
	require.NoError(t, err)

	var body CreateUserRequest
	require.NoError(t, json.Unmarshal(raw, &body))
	require.True(t, body.AccountEnabled)
	require.Equal(t, "A B", body.DisplayName)
	require.Equal(t, "a.b", body.MailNickname)
	require.Equal(t, "a.b@example.com", body.UserPrincipalName)
	require.True(t, body.PasswordProfile.ForceChangePasswordNextSignIn)
	require.Len(t, body.PasswordProfile.Password, 16)
	require.True(t, strings.HasSuffix(body.PasswordProfile.Password, "!aA1"))
}

func TestRestore_CountsOnlySuccessfulSubResponses(t *testing.T) {
	rec := &batchRecorder{
		respond: func(req BatchSubRequest) int {
			if req.ID == "3" {
				return http.StatusBadRequest
			}
			return http.StatusCreated
		},
	}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	restored, err := NewClient(srv.URL, srv.Client()).Restore(context.Background(), "tok", makeUsers(25))
	require.NoError(t, err)
	require.Equal(t, 23, restored)
}

func TestRestore_BatchFailureAbortsRemaining(t *testing.T) {
	rec := &batchRecorder{failCall: 2}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	restored, err := NewClient(srv.URL, srv.Client()).Restore(context.Background(), "tok", makeUsers(45))
	require.Equal(t, 20, restored)
	require.Len(t, rec.batches, 2)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	require.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	require.Equal(t, "create users batch", upErr.Op)
}

func TestRestore_SkipsRecordsWithoutUPN(t *testing.T) {
	rec := &batchRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	users := append(makeUsers(2),
		json.RawMessage(`{"id":"nope","displayName":"No UPN"}`),
		json.RawMessage(`"not an object"`),
	)

	restored, err := NewClient(srv.URL, srv.Client()).Restore(context.Background(), "tok", users)
	require.NoError(t, err)
	require.Equal(t, 2, restored)
	require.Len(t, rec.batches, 1)
	require.Len(t, rec.batches[0].Requests, 2)
}

func TestRestore_FailureLogsSnapshotIndex(t *testing.T) {
	rec := &batchRecorder{
		respond: func(req BatchSubRequest) int {
			body, _ := req.Body.(map[string]any)
			if body["userPrincipalName"] == "user.21@example.com" {
				return http.StatusConflict
			}
			return http.StatusCreated
		},
	}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	// Index 0 has no UPN, so the remaining 21 users shift by one in the queue.
	users := append([]json.RawMessage{json.RawMessage(`{"displayName":"No UPN"}`)}, makeUsers(22)[1:]...)

	var buf bytes.Buffer
	ctx := slogx.WithContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	restored, err := NewClient(srv.URL, srv.Client()).Restore(ctx, "tok", users)
	require.NoError(t, err)
	require.Equal(t, 20, restored)
	require.Len(t, rec.batches, 2)
	require.Len(t, rec.batches[1].Requests, 1)

	var failure map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["msg"] == "user creation failed" {
			failure = entry
		}
	}
	require.NotNil(t, failure)
	require.Equal(t, "0", failure["id"])
	require.EqualValues(t, 21, failure["index"])
	require.Equal(t, "user.21@example.com", failure["user_principal_name"])
}

func TestRestore_NothingToDo(t *testing.T) {
	rec := &batchRecorder{}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	restored, err := NewClient(srv.URL, srv.Client()).Restore(context.Background(), "tok", nil)
	require.NoError(t, err)
	require.Zero(t, restored)
	require.Empty(t, rec.batches)
}
