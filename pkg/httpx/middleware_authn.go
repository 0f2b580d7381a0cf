package httpx

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/aussiebroadwan/entrabackup/pkg/cryptox"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// BasicCredentials is the single operator account allowed to call the admin
// endpoints. PasswordHash is a bcrypt hash; the plaintext is never kept.
type BasicCredentials struct {
	Username     string
	PasswordHash string
	Realm        string
}

// NewBasicCredentials hashes password for use with BasicAuthMiddleware.
func NewBasicCredentials(username, password, realm string) (BasicCredentials, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return BasicCredentials{}, err
	}
	return BasicCredentials{Username: username, PasswordHash: hash, Realm: realm}, nil
}

// BasicAuthMiddleware rejects requests that do not carry the configured HTTP
// Basic credentials. The username is injected into the request context.
func BasicAuthMiddleware(creds BasicCredentials) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			username, password, ok := r.BasicAuth()
			if !ok {
				writeBasicChallenge(w, creds.Realm)
				return
			}

			// Always run the hash comparison so a wrong username costs the
			// same as a wrong password.
			userOK := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1
			passErr := cryptox.VerifyPassword(password, creds.PasswordHash)
			if !userOK || passErr != nil {
				log.Warn("basic auth rejected", "username", username)
				writeBasicChallenge(w, creds.Realm)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeBasicChallenge(w http.ResponseWriter, realm string) {
	if realm == "" {
		realm = "restricted"
	}
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`", charset="UTF-8"`)
	WriteText(w, http.StatusUnauthorized, "Unauthorized.")
}
