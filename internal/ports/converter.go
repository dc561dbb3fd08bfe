package ports

import (
	"context"
	"time"

	"github.com/devbush/swiftconvert/internal/domain"
)

// ConvertParams are the conversion options sent with each file
type ConvertParams struct {
	TargetFormat domain.FileTypeID
	Quality      int
}

// ConvertResponse is the backend reply for one uploaded file
type ConvertResponse struct {
	Results      []domain.ConversionResult
	ServerTiming time.Duration // from the Server-Timing header, zero if absent
}

// Converter submits files to the remote conversion endpoint
type Converter interface {
	// Convert uploads one file and waits for the converted results.
	// progress is called for every transferred chunk. Failures are
	// returned as *domain.SubmitError.
	Convert(ctx context.Context, file domain.SelectedFile, params ConvertParams, progress func(sent, total int64)) (*ConvertResponse, error)
}
