/*
Package backupsdk provides a client SDK for the entrabackup service.

# Overview

The SDKClient covers every endpoint of the service. Operator endpoints use
HTTP Basic credentials set on the client; the webhook and health endpoints
need none.

	client := backupsdk.NewSDKClient("https://backup.example.com", "operator", password)

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Snapshot the directory and list snapshots
	users, err := client.BackupUsers(ctx)
	backups, err := client.ListBackups(ctx)

	// Replay a snapshot
	restored, err := client.RestoreUsers(ctx, backups[0].ID)

# Errors

Non-2xx responses are returned as *APIError carrying the status code and the
plain-text body the service replied with:

	var apiErr *backupsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		// unknown backup
	}
*/
package backupsdk
