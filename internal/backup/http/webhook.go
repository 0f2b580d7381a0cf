package http

import (
	"io"
	"net/http"

	"github.com/aussiebroadwan/entrabackup/internal/backup/service"
	"github.com/aussiebroadwan/entrabackup/pkg/httpx"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

// maxNotificationBytes bounds a single notification delivery.
const maxNotificationBytes = 1 << 20

type WebhookHandler struct {
	WebhookService *service.WebhookService
}

// ServeHTTP handles both the subscription validation handshake and change
// notification delivery.
//
//	@Summary		Receive change notifications
//	@Description	With a validationToken query parameter the token is echoed back as text/plain.
//	@Description	Otherwise the body must be a change notification collection; every event must carry the subscription's clientState.
//	@Tags			Webhook
//	@Accept			json
//	@Produce		plain
//	@Param			validationToken	query		string	false	"Handshake token"
//	@Success		200				{string}	string	"Validation token or Webhook processed."
//	@Failure		400				{string}	string	"Invalid webhook request."
//	@Failure		401				{string}	string	"Unauthorized."
//	@Failure		500				{string}	string	"Internal server error."
//	@Router			/api/webhook [post]
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	if q := r.URL.Query(); q.Has("validationToken") {
		log.Info("subscription validation request received")
		httpx.WriteText(w, http.StatusOK, q.Get("validationToken"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxNotificationBytes))
	if err != nil {
		log.Warn("failed to read notification body", "error", err)
		httpx.WriteText(w, http.StatusBadRequest, msgInvalidWebhook)
		return
	}

	if _, err := h.WebhookService.HandleNotification(r.Context(), body); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, "Webhook processed.")
}
