package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/devbush/swiftconvert/internal/ports"
)

// maxFetchSize caps in-memory downloads
const maxFetchSize = 200 << 20

// Fetcher downloads converted artifacts and imported images
type Fetcher struct {
	client *Client
}

// NewFetcher creates a fetcher using client
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := f.client.uploadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download %s: HTTP %d", url, resp.StatusCode)
	}
	return resp, nil
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxFetchSize {
		return nil, fmt.Errorf("failed to download %s: larger than %d bytes", url, maxFetchSize)
	}
	return data, nil
}

func (f *Fetcher) Download(ctx context.Context, url string, destPath string, progress func(downloaded, total int64)) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	resp, err := f.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	// Track success to clean up partial downloads on failure
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(destPath)
		}
	}()

	total := resp.ContentLength
	var downloaded int64

	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			if progress != nil {
				progress(downloaded, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	success = true
	return nil
}

var _ ports.ArtifactFetcher = (*Fetcher)(nil)
