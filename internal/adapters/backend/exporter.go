package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// Exporter calls the Google Drive export endpoint
type Exporter struct {
	client *Client
}

// NewExporter creates an exporter using client
func NewExporter(client *Client) *Exporter {
	return &Exporter{client: client}
}

type exportRequest struct {
	UserID string             `json:"userId"`
	Files  []ports.ExportFile `json:"files"`
}

type exportResponse struct {
	Success   bool   `json:"success"`
	FolderURL string `json:"swiftConvertfolderUrl,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (e *Exporter) ExportToGoogleDrive(ctx context.Context, userID string, files []ports.ExportFile) (*ports.ExportResult, error) {
	payload, err := json.Marshal(exportRequest{UserID: userID, Files: files})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.client.baseURL+exportPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := e.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().Int("statusCode", resp.StatusCode).Dur("duration", time.Since(start)).Int("files", len(files)).Msg("export response")

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrUnauthorized
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed exportResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &domain.ExportError{Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
		}
		return nil, fmt.Errorf("parse response: %w (body: %s)", err, truncate(string(body), 200))
	}

	if !parsed.Success {
		return nil, &domain.ExportError{Message: parsed.Error}
	}

	return &ports.ExportResult{FolderURL: parsed.FolderURL}, nil
}

var _ ports.CloudExporter = (*Exporter)(nil)
