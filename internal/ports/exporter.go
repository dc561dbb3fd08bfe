package ports

import "context"

// ExportFile identifies a converted artifact on the backend
type ExportFile struct {
	ID       string `json:"id"`
	FileType string `json:"fileType"`
}

// ExportResult is returned when the cloud export succeeds
type ExportResult struct {
	FolderURL string
}

// CloudExporter copies converted artifacts into the user's cloud drive
type CloudExporter interface {
	// ExportToGoogleDrive returns domain.ErrUnauthorized for a 401 and
	// *domain.ExportError when the endpoint reports a failure.
	ExportToGoogleDrive(ctx context.Context, userID string, files []ExportFile) (*ExportResult, error)
}
