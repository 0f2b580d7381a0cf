package service

import (
	"errors"
	"fmt"
)

var (
	// ErrBackupNotFound is returned when a restore names an unknown backup.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrInvalidBackupData is returned when a stored payload is not a JSON array.
	ErrInvalidBackupData = errors.New("backup data is not a JSON array")

	// ErrInvalidClientState is returned when a notification event does not
	// echo the secret of the subscription it belongs to.
	ErrInvalidClientState = errors.New("invalid client state")

	// ErrMalformedNotification is returned for notification bodies without a
	// value array of JSON objects.
	ErrMalformedNotification = errors.New("malformed notification")

	// ErrNotificationURLMissing is returned when a subscription is requested
	// but no notification URL is configured.
	ErrNotificationURLMissing = errors.New("notification url is not configured")
)

// StorageError wraps any failure of the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
