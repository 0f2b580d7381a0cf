package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"strings"
	"time"

	"github.com/aussiebroadwan/entrabackup/internal/backup/domain"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
	"github.com/aussiebroadwan/entrabackup/pkg/metricsx"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// notificationEvent holds the fields of a change notification that are
// inspected. The event itself is stored verbatim. Fields are kept raw so a
// wrongly typed value is judged on its own instead of failing the delivery.
type notificationEvent struct {
	SubscriptionID json.RawMessage `json:"subscriptionId"`
	ClientState    json.RawMessage `json:"clientState"`
	ChangeType     json.RawMessage `json:"changeType"`
	Resource       json.RawMessage `json:"resource"`
}

// decodeEvent reads raw as a notification event. Anything that is not a JSON
// object yields an event with every field absent.
func decodeEvent(raw json.RawMessage) notificationEvent {
	var ev notificationEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return notificationEvent{}
	}
	return ev
}

// jsonString returns the value of raw when it is a JSON string. null counts
// as absent.
func jsonString(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || string(raw) == "null" || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

// WebhookService validates change notifications and records them in the
// audit log.
type WebhookService struct {
	Store         store.Store
	Subscriptions *SubscriptionService
	Metrics       *metricsx.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

// EventType classifies a notification by its changeType.
func EventType(changeType *string) string {
	if changeType == nil {
		return domain.EventTypeUnknown
	}
	return "user." + strings.ToLower(*changeType)
}

// HandleNotification validates every event of a notification body and then
// writes one audit record per event in a single transaction. If any event
// fails validation nothing is written. It returns the number of records.
func (s *WebhookService) HandleNotification(ctx context.Context, body []byte) (int, error) {
	log := slogx.FromContext(ctx)

	var payload struct {
		Value *[]json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Value == nil {
		s.Metrics.WebhookRejected("malformed")
		return 0, ErrMalformedNotification
	}

	now := s.now()
	logs := make([]domain.AuditLog, 0, len(*payload.Value))
	for i, raw := range *payload.Value {
		ev := decodeEvent(raw)
		subscriptionID, _ := jsonString(ev.SubscriptionID)
		clientState, ok := jsonString(ev.ClientState)

		expected := s.Subscriptions.ExpectedClientState(ctx, subscriptionID)
		if expected == "" || !ok ||
			subtle.ConstantTimeCompare([]byte(clientState), []byte(expected)) != 1 {
			log.Warn("notification rejected: client state mismatch",
				"event_index", i,
				"subscription_id", subscriptionID,
			)
			s.Metrics.WebhookRejected("client_state")
			return 0, ErrInvalidClientState
		}

		var changeType *string
		if v, ok := jsonString(ev.ChangeType); ok {
			changeType = &v
		}
		resource, ok := jsonString(ev.Resource)
		if !ok && len(ev.Resource) > 0 && string(ev.Resource) != "null" {
			// Non-string resources are stored as raw JSON.
			resource = string(ev.Resource)
		}

		logs = append(logs, domain.AuditLog{
			EventType:  EventType(changeType),
			ResourceID: resource,
			Event:      raw,
			CreatedAt:  now,
		})
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, l := range logs {
			if _, err := tx.AuditLogs().CreateAuditLog(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, &StorageError{Op: "save audit logs", Err: err}
	}

	for _, l := range logs {
		s.Metrics.WebhookEvent(l.EventType)
		log.Info("notification recorded", "event_type", l.EventType, "resource", l.ResourceID)
	}
	return len(logs), nil
}

func (s *WebhookService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
