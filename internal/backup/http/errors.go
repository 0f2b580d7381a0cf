package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/entrabackup/internal/backup/service"
	"github.com/aussiebroadwan/entrabackup/pkg/graph"
	"github.com/aussiebroadwan/entrabackup/pkg/httpx"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

const (
	msgInternalError  = "Internal server error."
	msgUnauthorized   = "Unauthorized."
	msgInvalidWebhook = "Invalid webhook request."
	msgInvalidBackup  = "Invalid backup data: expected an array."
	msgInvalidID      = "Invalid backup id."
	msgNotFound       = "Backup not found."
)

// writeServiceError maps a service error to its status code and plain-text
// body. Anything unrecognised is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var (
		authErr     *graph.AuthError
		upstreamErr *graph.UpstreamError
		storageErr  *service.StorageError
	)

	switch {
	case errors.Is(err, service.ErrBackupNotFound):
		httpx.WriteText(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrInvalidBackupData):
		httpx.WriteText(w, http.StatusBadRequest, msgInvalidBackup)
	case errors.Is(err, service.ErrMalformedNotification):
		httpx.WriteText(w, http.StatusBadRequest, msgInvalidWebhook)
	case errors.Is(err, service.ErrInvalidClientState):
		httpx.WriteText(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.As(err, &authErr):
		log.Error("token exchange failed", "status", authErr.StatusCode, "error", err)
		httpx.WriteText(w, http.StatusInternalServerError, msgInternalError)
	case errors.As(err, &upstreamErr):
		log.Error("upstream call failed", "op", upstreamErr.Op, "status", upstreamErr.StatusCode, "error", err)
		httpx.WriteText(w, http.StatusInternalServerError, msgInternalError)
	case errors.As(err, &storageErr):
		log.Error("storage failure", "op", storageErr.Op, "error", err)
		httpx.WriteText(w, http.StatusInternalServerError, msgInternalError)
	default:
		log.Error("request failed", "error", err)
		httpx.WriteText(w, http.StatusInternalServerError, msgInternalError)
	}
}
