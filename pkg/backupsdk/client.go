package backupsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the entrabackup service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Username and Password are sent as HTTP Basic credentials on operator
	// endpoints.
	Username string
	Password string
}

// NewSDKClient creates a new client. Backup and restore walk the whole
// directory, so the timeout is generous.
func NewSDKClient(baseURL, username, password string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
		Username: username,
		Password: password,
	}
}
