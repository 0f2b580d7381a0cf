package domain

import (
	"encoding/json"
	"time"
)

// Tags written on directory user backups.
const (
	DataTypeUser    = "user"
	BackupTypeEntra = "entra"
)

// Backup is an immutable snapshot of a directory. Data is a JSON array of the
// provider's user objects in the order they were listed.
type Backup struct {
	ID         int64           `json:"id"`
	TenantID   string          `json:"tenantId"`
	DataType   string          `json:"dataType"`
	BackupType string          `json:"backupType"`
	Data       json.RawMessage `json:"backupData"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// BackupSummary is a Backup without its payload.
type BackupSummary struct {
	ID         int64     `json:"id"`
	TenantID   string    `json:"tenantId"`
	DataType   string    `json:"dataType"`
	CreatedAt  time.Time `json:"createdAt"`
	BackupType string    `json:"backupType"`
}
