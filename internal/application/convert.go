package application

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// ConvertParams are the settings a file is converted with
type ConvertParams struct {
	TargetFormat domain.FileTypeID
	Quality      int
}

// Submission is the outcome of one successful conversion
type Submission struct {
	File           domain.SelectedFile
	Results        []domain.ConversionResult
	CompletionTime time.Duration
}

// ConvertService submits files to the conversion backend one at a time
type ConvertService struct {
	converter ports.Converter
	progress  *ProgressTracker
	loading   atomic.Bool
}

// NewConvertService creates a conversion service reporting into progress
func NewConvertService(converter ports.Converter, progress *ProgressTracker) *ConvertService {
	if progress == nil {
		progress = NewProgressTracker(nil)
	}
	return &ConvertService{
		converter: converter,
		progress:  progress,
	}
}

// Loading reports whether a submission is in flight
func (s *ConvertService) Loading() bool {
	return s.loading.Load()
}

// Progress returns a snapshot of the current submission's progress
func (s *ConvertService) Progress() domain.Progress {
	return s.progress.Snapshot()
}

// Submit uploads file and waits for its converted results.
// There is exactly one request per call and no retry.
func (s *ConvertService) Submit(ctx context.Context, file domain.SelectedFile, params ConvertParams) (*Submission, error) {
	s.loading.Store(true)
	defer s.loading.Store(false)

	s.progress.Reset(file.Name)

	resp, err := s.converter.Convert(ctx, file, ports.ConvertParams{
		TargetFormat: params.TargetFormat,
		Quality:      params.Quality,
	}, s.progress.SetUpload)
	if err != nil {
		s.progress.Reset(file.Name)
		logSubmitError(file, err)
		return nil, err
	}

	s.progress.Complete(resp.ServerTiming)

	log.Info().
		Str("file", file.Name).
		Int("results", len(resp.Results)).
		Dur("server_time", resp.ServerTiming).
		Msg("conversion complete")

	return &Submission{
		File:           file,
		Results:        resp.Results,
		CompletionTime: resp.ServerTiming,
	}, nil
}

func logSubmitError(file domain.SelectedFile, err error) {
	var submitErr *domain.SubmitError
	if !errors.As(err, &submitErr) {
		log.Error().Err(err).Str("file", file.Name).Msg("conversion failed")
		return
	}

	switch submitErr.Kind {
	case domain.KindServerResponse:
		log.Error().
			Str("file", file.Name).
			Int("status", submitErr.StatusCode).
			Str("body", submitErr.Body).
			Msg("conversion rejected by server")
	case domain.KindNoResponse:
		log.Error().Err(submitErr.Err).Str("file", file.Name).Msg("no response from conversion server")
	default:
		log.Error().Err(submitErr.Err).Str("file", file.Name).Msg("could not build conversion request")
	}
}
