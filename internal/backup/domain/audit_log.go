package domain

import (
	"encoding/json"
	"time"
)

// EventTypeUnknown classifies notification events that carry no changeType.
const EventTypeUnknown = "unknown"

// AuditLog records one validated change notification event.
type AuditLog struct {
	ID         int64
	EventType  string // "user.created", "user.updated", "user.deleted" or EventTypeUnknown
	ResourceID string // Graph resource path, empty when the event had none
	Event      json.RawMessage
	CreatedAt  time.Time
}
