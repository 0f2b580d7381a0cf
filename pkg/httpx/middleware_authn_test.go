package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/entrabackup/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestBasicAuthMiddleware(t *testing.T) {
	creds, err := httpx.NewBasicCredentials("operator", "s3cret", "entrabackup")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", creds.PasswordHash)

	var gotUser string
	handler := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = httpx.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}), httpx.BasicAuthMiddleware(creds))

	tests := []struct {
		name       string
		setAuth    func(r *http.Request)
		wantStatus int
	}{
		{"no credentials", func(r *http.Request) {}, http.StatusUnauthorized},
		{"bearer instead of basic", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, http.StatusUnauthorized},
		{"wrong password", func(r *http.Request) { r.SetBasicAuth("operator", "nope") }, http.StatusUnauthorized},
		{"wrong username", func(r *http.Request) { r.SetBasicAuth("admin", "s3cret") }, http.StatusUnauthorized},
		{"valid", func(r *http.Request) { r.SetBasicAuth("operator", "s3cret") }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			req := httptest.NewRequest(http.MethodGet, "/api/backups", nil)
			tt.setAuth(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusUnauthorized {
				require.Equal(t, `Basic realm="entrabackup", charset="UTF-8"`, rec.Header().Get("WWW-Authenticate"))
				require.Empty(t, gotUser)
				return
			}
			require.Equal(t, "operator", gotUser)
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}
