package application

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// Analytics event names
const (
	EventDownloadAllImages = "download_all_images"
	EventSaveToGoogleDrive = "save_to_google_drive"
)

// User-facing export messages
const (
	msgSignInToSave      = "Sign in to save photos"
	msgSignInForDrive    = "Please sign in to save photos to Google Drive"
	msgDriveErrorPrefix  = "Error saving photos to Google Drive: "
	msgDriveSuccessTitle = "Files uploaded to Google Drive! 🎉"
	msgDriveSuccessBody  = `You can view them in your Drive's "SwiftConvert" folder.`
	msgDriveLinkText     = "Open SwiftConvert Folder"
)

const defaultPayloadCacheSize = 64

// ExportService saves converted results locally or to the cloud drive
type ExportService struct {
	fetcher   ports.ArtifactFetcher
	archiver  ports.Archiver
	cloud     ports.CloudExporter
	auth      ports.AuthProvider
	analytics ports.Analytics
	notifier  ports.Notifier
	payloads  *lru.Cache[string, []byte]
}

// ExportDeps groups the collaborators of ExportService
type ExportDeps struct {
	Fetcher   ports.ArtifactFetcher
	Archiver  ports.Archiver
	Cloud     ports.CloudExporter
	Auth      ports.AuthProvider
	Analytics ports.Analytics
	Notifier  ports.Notifier
	CacheSize int // fetched payloads kept in memory, keyed by result id
}

// NewExportService creates an export service
func NewExportService(deps ExportDeps) (*ExportService, error) {
	size := deps.CacheSize
	if size <= 0 {
		size = defaultPayloadCacheSize
	}
	payloads, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create payload cache: %w", err)
	}

	return &ExportService{
		fetcher:   deps.Fetcher,
		archiver:  deps.Archiver,
		cloud:     deps.Cloud,
		auth:      deps.Auth,
		analytics: deps.Analytics,
		notifier:  deps.Notifier,
		payloads:  payloads,
	}, nil
}

// SaveLocal downloads every result and writes them as one archive to destPath.
// Any failed download aborts the whole batch and no archive is written.
func (s *ExportService) SaveLocal(ctx context.Context, results []domain.ConversionResult, destPath string) error {
	if len(results) == 0 {
		return domain.ErrNoResults
	}

	entries := make([]ports.ArchiveEntry, 0, len(results))
	seen := make(map[string]int, len(results))
	for _, r := range results {
		data, err := s.fetch(ctx, r)
		if err != nil {
			log.Error().Err(err).Str("id", r.ID).Str("url", r.DownloadURL).Msg("download failed")
			return fmt.Errorf("failed to download %s: %w", r.ArchiveName(), err)
		}
		entries = append(entries, ports.ArchiveEntry{
			Name: domain.UniqueName(r.ArchiveName(), seen),
			Data: data,
		})
	}

	if err := s.archiver.Write(destPath, entries); err != nil {
		log.Error().Err(err).Str("path", destPath).Msg("failed to write archive")
		return fmt.Errorf("failed to save archive: %w", err)
	}

	log.Info().Int("files", len(entries)).Str("path", destPath).Msg("archive saved")
	s.capture(EventDownloadAllImages, len(entries))
	return nil
}

// SaveToCloud copies results into the signed-in user's Google Drive.
// Without an identity nothing is sent.
func (s *ExportService) SaveToCloud(ctx context.Context, results []domain.ConversionResult) (*ports.ExportResult, error) {
	session, err := s.auth.Session(ctx)
	if err != nil || !session.Authenticated() {
		s.notifier.Warn(msgSignInToSave)
		return nil, domain.ErrNotSignedIn
	}
	if len(results) == 0 {
		return nil, domain.ErrNoResults
	}

	files := make([]ports.ExportFile, 0, len(results))
	for _, r := range results {
		files = append(files, ports.ExportFile{ID: r.ID, FileType: r.Type})
	}

	res, err := s.cloud.ExportToGoogleDrive(ctx, session.UserID, files)
	if err != nil {
		log.Error().Err(err).Int("files", len(files)).Msg("google drive export failed")
		if errors.Is(err, domain.ErrUnauthorized) {
			s.notifier.Error(msgSignInForDrive)
		} else {
			s.notifier.Error(msgDriveErrorPrefix + err.Error())
		}
		return nil, err
	}

	s.notifier.Success(msgDriveSuccessTitle, msgDriveSuccessBody, &ports.Link{
		Href: res.FolderURL,
		Text: msgDriveLinkText,
	})
	s.capture(EventSaveToGoogleDrive, len(results))
	return res, nil
}

func (s *ExportService) fetch(ctx context.Context, r domain.ConversionResult) ([]byte, error) {
	key := r.ID
	if key == "" {
		key = r.DownloadURL
	}
	if data, ok := s.payloads.Get(key); ok {
		return data, nil
	}

	data, err := s.fetcher.Fetch(ctx, r.DownloadURL)
	if err != nil {
		return nil, err
	}
	s.payloads.Add(key, data)
	return data, nil
}

func (s *ExportService) capture(event string, count int) {
	if s.analytics == nil {
		return
	}
	s.analytics.Capture(event, map[string]any{"imageCount": count})
}
