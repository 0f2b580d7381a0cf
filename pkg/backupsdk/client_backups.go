package backupsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
)

var restoredPattern = regexp.MustCompile(`^Restored (\d+) users\.$`)

// BackupUsers snapshots the directory and returns the users it contained.
func (c *SDKClient) BackupUsers(ctx context.Context) ([]json.RawMessage, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/backup-users", nil, nil, true)
	if err != nil {
		return nil, err
	}

	var users []json.RawMessage
	if err := decodeJSON(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListBackups returns every stored backup, oldest first.
func (c *SDKClient) ListBackups(ctx context.Context) ([]BackupSummary, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/backups", nil, nil, true)
	if err != nil {
		return nil, err
	}

	var backups []BackupSummary
	if err := decodeJSON(body, &backups); err != nil {
		return nil, err
	}
	return backups, nil
}

// RestoreUsers replays backup id and returns how many users were created.
func (c *SDKClient) RestoreUsers(ctx context.Context, id int64) (int, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/restore-users/"+strconv.FormatInt(id, 10), nil, nil, true)
	if err != nil {
		return 0, err
	}

	m := restoredPattern.FindSubmatch(body)
	if m == nil {
		return 0, fmt.Errorf("unexpected restore response: %q", body)
	}
	return strconv.Atoi(string(m[1]))
}
