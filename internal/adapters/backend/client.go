// Package backend talks to the conversion backend over HTTP.
//
// The backend exposes two endpoints used by the client:
//   - POST /api/v1/convert         multipart upload of one image
//   - POST /api/v1/export/google   copy converted artifacts into Google Drive
//
// Converted artifacts themselves are downloaded from the URLs the backend
// returns, which may live on a different host.
package backend

import (
	"net/http"
	"strings"
	"time"
)

const (
	convertPath = "/api/v1/convert"
	exportPath  = "/api/v1/export/google"

	// defaultTimeout bounds API calls. Uploads use a longer one.
	defaultTimeout = 30 * time.Second
	uploadTimeout  = 10 * time.Minute
)

// Client is shared by the converter, exporter and fetcher adapters
type Client struct {
	httpClient   *http.Client
	uploadClient *http.Client
	baseURL      string
}

// NewClient creates a backend client for baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		uploadClient: &http.Client{Timeout: uploadTimeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the backend root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// truncate shortens s for log and error messages
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
