package ports

import "context"

// ArtifactFetcher retrieves remote files over HTTP
type ArtifactFetcher interface {
	// Fetch downloads url fully into memory.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Download streams url to destPath, reporting progress via callback.
	Download(ctx context.Context, url string, destPath string, progress func(downloaded, total int64)) error
}
