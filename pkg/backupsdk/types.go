package backupsdk

import (
	"encoding/json"
	"time"
)

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks is only present on /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}

// BackupSummary describes a stored backup without its payload.
type BackupSummary struct {
	ID         int64     `json:"id"`
	TenantID   string    `json:"tenantId"`
	DataType   string    `json:"dataType"`
	CreatedAt  time.Time `json:"createdAt"`
	BackupType string    `json:"backupType"`
}

// Notification is a change notification delivery as posted by Graph.
type Notification struct {
	Value []NotificationEvent `json:"value"`
}

// NotificationEvent is one event of a Notification. Pointer fields are
// omitted when nil.
type NotificationEvent struct {
	SubscriptionID string          `json:"subscriptionId,omitempty"`
	ClientState    *string         `json:"clientState,omitempty"`
	ChangeType     *string         `json:"changeType,omitempty"`
	Resource       string          `json:"resource,omitempty"`
	ResourceData   json.RawMessage `json:"resourceData,omitempty"`
}
