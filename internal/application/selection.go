package application

import (
	"fmt"
	"strings"

	"github.com/devbush/swiftconvert/internal/domain"
)

// OutputSelector is the output format picker
type OutputSelector struct {
	store *SettingsStore
}

// NewOutputSelector creates an output selector writing to store
func NewOutputSelector(store *SettingsStore) *OutputSelector {
	return &OutputSelector{store: store}
}

// Options returns the output types that can be offered right now
func (s *OutputSelector) Options() []domain.SupportedFileType {
	settings := s.store.Read()
	return domain.OutputCatalog(settings.KnownUploadedFileTypes, settings.FileOutputID)
}

// Selected returns the catalog entry for the current output type
func (s *OutputSelector) Selected() domain.SupportedFileType {
	settings := s.store.Read()
	if ft, ok := domain.LookupFileType(settings.FileOutputID); ok {
		return ft
	}
	return domain.FileTypes()[0]
}

// Select commits id as the output type
func (s *OutputSelector) Select(id domain.FileTypeID) error {
	settings := s.store.Read()
	if id == settings.FileOutputID {
		return nil
	}

	for _, ft := range domain.OutputCatalog(settings.KnownUploadedFileTypes, settings.FileOutputID) {
		if ft.ID != id {
			continue
		}
		if ft.Unavailable {
			return fmt.Errorf("%w: %s was already uploaded", domain.ErrUnsupportedOutput, ft.Name)
		}
		settings.FileOutputID = id
		s.store.Update(settings)
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrUnsupportedOutput, id)
}

// QualitySelector is the image quality slider
type QualitySelector struct {
	store *SettingsStore
}

// NewQualitySelector creates a quality selector writing to store
func NewQualitySelector(store *SettingsStore) *QualitySelector {
	return &QualitySelector{store: store}
}

// Steps returns the selectable quality values
func (s *QualitySelector) Steps() []int {
	return domain.QualitySteps()
}

// Current returns the stored quality
func (s *QualitySelector) Current() int {
	return s.store.Read().ImageQuality
}

// Set commits q immediately; every step of a drag is stored as it happens
func (s *QualitySelector) Set(q int) error {
	if !domain.IsValidQuality(q) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuality, q)
	}
	settings := s.store.Read()
	settings.ImageQuality = q
	s.store.Update(settings)
	return nil
}

// AllowedInputExtensions lists the extensions advertised by the upload
// surface: every output option except the selected output, plus the
// input-only types the backend cannot produce yet.
func AllowedInputExtensions(settings domain.Settings) []string {
	selected := ""
	if ft, ok := domain.LookupFileType(settings.FileOutputID); ok {
		selected = strings.ToLower(ft.Name)
	}

	var exts []string
	for _, ft := range domain.OutputCatalog(settings.KnownUploadedFileTypes, settings.FileOutputID) {
		if strings.ToLower(ft.Name) == selected {
			continue
		}
		exts = append(exts, ft.Extension())
	}
	return append(exts, domain.InputOnlyExtensions()...)
}
