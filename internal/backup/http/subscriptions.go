package http

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/entrabackup/internal/backup/service"
	"github.com/aussiebroadwan/entrabackup/pkg/httpx"
)

type SubscriptionsHandler struct {
	SubscriptionService *service.SubscriptionService
}

// HandleCreate registers a change notification subscription for users.
//
//	@Summary		Create a user change subscription
//	@Description	Registers a one-day subscription for created, updated and deleted users under a fresh clientState secret and returns the provider's response.
//	@Tags			Subscriptions
//	@Produce		json
//	@Success		200	{object}	object	"Provider subscription"
//	@Failure		401	{string}	string	"Unauthorized."
//	@Failure		500	{string}	string	"Internal server error."
//	@Security		BasicAuth
//	@Router			/api/create-subscription [post]
func (h *SubscriptionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := h.SubscriptionService.CreateSubscription(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteRawJSON(w, http.StatusOK, raw)
}

// HandleDeleteAll removes every subscription the application owns.
//
//	@Summary		Delete all subscriptions
//	@Description	Lists the application's subscriptions at the provider and deletes them in batches.
//	@Tags			Subscriptions
//	@Produce		plain
//	@Success		200	{string}	string	"Deleted N subscriptions."
//	@Failure		401	{string}	string	"Unauthorized."
//	@Failure		500	{string}	string	"Internal server error."
//	@Security		BasicAuth
//	@Router			/api/subscriptions [delete]
func (h *SubscriptionsHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.SubscriptionService.DeleteAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, fmt.Sprintf("Deleted %d subscriptions.", deleted))
}
