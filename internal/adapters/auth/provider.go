package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/devbush/swiftconvert/internal/ports"
)

// sessionFile is the on-disk identity written after sign-in
type sessionFile struct {
	UserID string `yaml:"user_id"`
	Loaded bool   `yaml:"loaded"`
}

// FileProvider reads the signed-in identity from a local YAML file and
// starts sign-in by opening the provider page in a browser.
type FileProvider struct {
	fs        afero.Fs
	path      string
	signInURL string
	openURL   func(url string) error
}

// NewFileProvider creates a provider backed by path. A nil fs uses the OS filesystem.
func NewFileProvider(fs afero.Fs, path, signInURL string) *FileProvider {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileProvider{
		fs:        fs,
		path:      path,
		signInURL: signInURL,
		openURL:   browser.OpenURL,
	}
}

// Session returns the stored identity. A missing file is a signed-out session.
func (p *FileProvider) Session(ctx context.Context) (ports.AuthSession, error) {
	data, err := afero.ReadFile(p.fs, p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ports.AuthSession{IsLoaded: true}, nil
		}
		return ports.AuthSession{}, err
	}

	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ports.AuthSession{}, fmt.Errorf("failed to parse %s: %w", p.path, err)
	}
	return ports.AuthSession{IsLoaded: f.Loaded, UserID: f.UserID}, nil
}

// SignIn opens the sign-in page
func (p *FileProvider) SignIn(ctx context.Context) error {
	if p.signInURL == "" {
		return fmt.Errorf("no sign-in URL configured")
	}
	log.Info().Str("url", p.signInURL).Msg("opening sign-in page")
	if err := p.openURL(p.signInURL); err != nil {
		return fmt.Errorf("failed to open browser, visit %s to sign in: %w", p.signInURL, err)
	}
	return nil
}

// SignInURL returns the configured sign-in page
func (p *FileProvider) SignInURL() string {
	return p.signInURL
}

// Store records userID as the signed-in identity
func (p *FileProvider) Store(userID string) error {
	if err := p.fs.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(sessionFile{UserID: userID, Loaded: true})
	if err != nil {
		return err
	}
	return afero.WriteFile(p.fs, p.path, data, 0600)
}

// SignOut removes the stored identity
func (p *FileProvider) SignOut() error {
	err := p.fs.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ ports.AuthProvider = (*FileProvider)(nil)
