package domain

import (
	"errors"
	"fmt"
)

var (
	// Catalog and settings errors
	ErrUnknownFileType   = errors.New("unknown file type")
	ErrUnsupportedOutput = errors.New("output type not available")
	ErrInvalidQuality    = errors.New("image quality must be a quality step")
	ErrIsDirectory       = errors.New("path is a directory")

	// Upload errors
	ErrWrongInputType  = errors.New("file does not match input type")
	ErrTooManyFiles    = errors.New("too many files")
	ErrPayloadTooLarge = errors.New("total upload size exceeded")
	ErrInvalidURL      = errors.New("invalid public URL")
	ErrNoFileSelected  = errors.New("no file selected")

	// Cloud drive import is a sign-in redirect only
	ErrCloudImportUnsupported = errors.New("cloud drive import is not available yet; sign-in started")

	// Auth errors
	ErrNotSignedIn     = errors.New("sign in to save photos")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidProvider = errors.New("invalid provider")
	ErrInvalidUserID   = errors.New("invalid user ID")

	// Workflow errors
	ErrJobAlreadyRunning = errors.New("job already running")
	ErrNoResults         = errors.New("no converted files to export")

	// Session errors
	ErrSessionExpired = errors.New("session expired")
	ErrSessionMiss    = errors.New("no session")
)

// SubmitErrorKind classifies why a conversion request failed
type SubmitErrorKind string

const (
	KindServerResponse SubmitErrorKind = "server_response" // non-2xx reply
	KindNoResponse     SubmitErrorKind = "no_response"     // network failure or timeout
	KindRequest        SubmitErrorKind = "request"         // request could not be built
)

// SubmitError is returned by converters for every failed submission
type SubmitError struct {
	Kind       SubmitErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *SubmitError) Error() string {
	switch e.Kind {
	case KindServerResponse:
		return fmt.Sprintf("conversion failed: server responded %d: %s", e.StatusCode, e.Body)
	case KindNoResponse:
		return fmt.Sprintf("conversion failed: no response from server: %v", e.Err)
	default:
		return fmt.Sprintf("conversion failed: could not build request: %v", e.Err)
	}
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// ExportError carries the message returned by the export endpoint
type ExportError struct {
	Message string
}

func (e *ExportError) Error() string {
	return e.Message
}
