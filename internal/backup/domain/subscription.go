package domain

import "time"

// Subscription is a change notification subscription registered with Graph,
// together with the clientState secret its notifications must echo.
type Subscription struct {
	ID              string
	ClientState     string
	Resource        string
	ChangeType      string
	NotificationURL string
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// Active reports whether the subscription is still valid at now.
func (s Subscription) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
