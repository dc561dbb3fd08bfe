package application

import (
	"context"
	"errors"
	"testing"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

func TestBindSession_RestoresAndSaves(t *testing.T) {
	saved := domain.DefaultSettings()
	saved.FileOutputID = domain.FileTypeWEBP
	saved.ImageQuality = 40
	session := &mockSession{state: &ports.SessionState{
		Settings: saved,
		Results:  testResults,
	}}

	store := NewSettingsStore(domain.DefaultSettings())
	results, unsubscribe := BindSession(context.Background(), store, session)
	defer unsubscribe()

	if got := store.Read(); got.FileOutputID != domain.FileTypeWEBP || got.ImageQuality != 40 {
		t.Errorf("restored settings = %+v", got)
	}
	if len(results) != len(testResults) {
		t.Errorf("restored %d results, want %d", len(results), len(testResults))
	}

	if err := NewQualitySelector(store).Set(90); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if session.state.Settings.ImageQuality != 90 {
		t.Errorf("saved quality = %d, want 90", session.state.Settings.ImageQuality)
	}
	if len(session.state.Results) != len(testResults) {
		t.Error("saving settings dropped stored results")
	}
}

func TestBindSession_IgnoresInvalidSettings(t *testing.T) {
	session := &mockSession{state: &ports.SessionState{
		Settings: domain.Settings{FileInputID: "jpg", FileOutputID: "heic", ImageQuality: 80},
	}}

	store := NewSettingsStore(domain.DefaultSettings())
	_, unsubscribe := BindSession(context.Background(), store, session)
	defer unsubscribe()

	if got := store.Read().FileOutputID; got != domain.FileTypePNG {
		t.Errorf("FileOutputID = %s, want png", got)
	}
}

func TestBindSession_LoadError(t *testing.T) {
	session := &mockSession{err: errors.New("disk on fire")}

	store := NewSettingsStore(domain.DefaultSettings())
	results, unsubscribe := BindSession(context.Background(), store, session)
	defer unsubscribe()

	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
	if got := store.Read(); got.FileOutputID != domain.FileTypePNG {
		t.Errorf("settings changed on load error: %+v", got)
	}
}
