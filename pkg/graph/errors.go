package graph

import (
	"errors"
	"fmt"
)

// ErrMissingUserPrincipalName is returned when a backed up user record has no
// userPrincipalName and therefore cannot be recreated.
var ErrMissingUserPrincipalName = errors.New("graph: user has no userPrincipalName")

// AuthError reports a failed client-credentials exchange with the identity
// provider. StatusCode is zero when no HTTP response was received.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("graph: token exchange failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("graph: token exchange failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError reports a Graph API call that returned a non-2xx status or a
// body that could not be parsed.
type UpstreamError struct {
	Op         string // e.g. "list users", "create users batch"
	StatusCode int    // zero for transport or decode failures
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("graph: %s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("graph: %s failed with status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("graph: %s: %v", e.Op, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

var errInvalidJSON = errors.New("response is not valid JSON")
