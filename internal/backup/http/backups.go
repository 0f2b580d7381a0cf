package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/entrabackup/internal/backup/service"
	"github.com/aussiebroadwan/entrabackup/pkg/httpx"
)

type BackupsHandler struct {
	BackupService *service.BackupService
}

// HandleBackupUsers takes a snapshot of the directory.
//
//	@Summary		Back up directory users
//	@Description	Lists every user in the Entra directory, stores the result as a new backup and returns the users.
//	@Tags			Backups
//	@Produce		json
//	@Success		200	{array}		object	"Users in directory order"
//	@Failure		401	{string}	string	"Unauthorized."
//	@Failure		500	{string}	string	"Internal server error."
//	@Security		BasicAuth
//	@Router			/api/backup-users [post]
func (h *BackupsHandler) HandleBackupUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.BackupService.BackupUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

// HandleListBackups lists stored backups without their payloads.
//
//	@Summary		List backups
//	@Description	Returns a summary of every stored backup, oldest first. Payloads are never included.
//	@Tags			Backups
//	@Produce		json
//	@Success		200	{array}		domain.BackupSummary
//	@Failure		401	{string}	string	"Unauthorized."
//	@Failure		500	{string}	string	"Internal server error."
//	@Security		BasicAuth
//	@Router			/api/backups [get]
func (h *BackupsHandler) HandleListBackups(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.BackupService.ListBackups(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summaries)
}

// HandleRestoreUsers replays a backup into the directory.
//
//	@Summary		Restore users from a backup
//	@Description	Recreates every user of the backup through batched creation calls, 20 per batch. New users get a random password that must be changed at next sign-in.
//	@Tags			Backups
//	@Produce		plain
//	@Param			backupId	path		int		true	"Backup id"
//	@Success		200			{string}	string	"Restored N users."
//	@Failure		400			{string}	string	"Invalid backup id or backup data."
//	@Failure		401			{string}	string	"Unauthorized."
//	@Failure		404			{string}	string	"Backup not found."
//	@Failure		500			{string}	string	"Internal server error."
//	@Security		BasicAuth
//	@Router			/api/restore-users/{backupId} [post]
func (h *BackupsHandler) HandleRestoreUsers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("backupId"), 10, 64)
	if err != nil {
		httpx.WriteText(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	restored, err := h.BackupService.RestoreUsers(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteText(w, http.StatusOK, fmt.Sprintf("Restored %d users.", restored))
}
