package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/aussiebroadwan/entrabackup/pkg/cryptox"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

const (
	// DefaultAuthority is the Entra ID login host.
	DefaultAuthority = "https://login.microsoftonline.com"

	// DefaultScope requests every application permission granted to the client.
	DefaultScope = "https://graph.microsoft.com/.default"

	// ExpiryMargin is subtracted from the provider-declared token lifetime so a
	// token is never handed out close to the moment it stops being accepted.
	ExpiryMargin = 5 * time.Minute
)

// TokenConfig configures a TokenCache.
type TokenConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Authority    string   // defaults to DefaultAuthority
	Scopes       []string // defaults to DefaultScope
	HTTPClient   *http.Client

	// OnRefresh, if set, is called after every exchange attempt.
	OnRefresh func(err error)
}

// TokenEndpoint returns the v2.0 token endpoint for the configured tenant.
func (c TokenConfig) TokenEndpoint() string {
	authority := c.Authority
	if authority == "" {
		authority = DefaultAuthority
	}
	return strings.TrimSuffix(authority, "/") + "/" + c.TenantID + "/oauth2/v2.0/token"
}

// TokenCache holds a single client-credentials access token and refreshes it
// lazily once it reaches its discounted expiry.
type TokenCache struct {
	cfg        clientcredentials.Config
	httpClient *http.Client
	onRefresh  func(error)
	now        func() time.Time

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewTokenCache creates an empty cache. No exchange happens until the first
// call to AccessToken.
func NewTokenCache(cfg TokenConfig) *TokenCache {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &TokenCache{
		cfg: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenEndpoint(),
			Scopes:       scopes,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
		onRefresh:  cfg.OnRefresh,
		now:        time.Now,
	}
}

// AccessToken returns the cached token, performing a client-credentials
// exchange first when nothing is cached or the cached token has expired.
// A failed exchange returns an *AuthError and leaves the cache untouched.
func (c *TokenCache) AccessToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.token != "" && c.now().Before(c.expiresAt) {
		token := c.token
		c.mu.RUnlock()
		return token, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the write lock.
	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	token, expiresAt, err := c.exchange(ctx)
	if c.onRefresh != nil {
		c.onRefresh(err)
	}
	if err != nil {
		return "", err
	}

	c.token = token
	c.expiresAt = expiresAt
	return token, nil
}

// ExpiresAt reports the discounted expiry of the cached token. The zero time
// means nothing has been cached yet.
func (c *TokenCache) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt
}

func (c *TokenCache) exchange(ctx context.Context) (string, time.Time, error) {
	log := slogx.FromContext(ctx)
	issuedAt := c.now()

	tok, err := c.cfg.Token(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient))
	if err != nil {
		authErr := &AuthError{Err: err}
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			authErr.StatusCode = retrieveErr.Response.StatusCode
		}
		log.Error("token exchange failed", "status", authErr.StatusCode, "error", err)
		return "", time.Time{}, authErr
	}

	lifetime, ok := expiresIn(tok)
	switch {
	case ok:
		// expires_in is authoritative; it is relative to the exchange.
	case !tok.Expiry.IsZero():
		lifetime = tok.Expiry.Sub(issuedAt)
	default:
		return "", time.Time{}, &AuthError{Err: errors.New("token response has no expires_in")}
	}

	expiresAt := issuedAt.Add(lifetime - ExpiryMargin)
	log.Info("access token refreshed", "expires_at", expiresAt)
	logClaims(ctx, tok.AccessToken)

	return tok.AccessToken, expiresAt, nil
}

// expiresIn reads the raw expires_in field, which Entra has been known to send
// both as a number and as a string.
func expiresIn(tok *oauth2.Token) (time.Duration, bool) {
	var seconds int64
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		seconds = int64(v)
	case int64:
		seconds = v
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		seconds = n
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		seconds = n
	default:
		return 0, false
	}
	if seconds <= 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// logClaims records which application and roles the token was issued for.
// The signature is not checked; Graph does that.
func logClaims(ctx context.Context, raw string) {
	log := slogx.FromContext(ctx).With("token_fp", cryptox.FingerprintToken(raw))

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		log.Debug("access token is not a readable JWT", "error", err)
		return
	}
	log.Debug("access token claims",
		"appid", claims["appid"],
		"tid", claims["tid"],
		"roles", fmt.Sprint(claims["roles"]),
	)
}
