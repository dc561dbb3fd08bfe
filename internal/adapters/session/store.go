package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

const fileName = "settings.json"

// FileStore keeps the session as a single JSON file
type FileStore struct {
	fs      afero.Fs
	baseDir string
	ttl     time.Duration
	now     func() time.Time

	mu sync.Mutex
}

// NewFileStore creates a session store under baseDir. A nil fs uses the OS filesystem.
func NewFileStore(fs afero.Fs, baseDir string, ttl time.Duration) *FileStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileStore{
		fs:      fs,
		baseDir: baseDir,
		ttl:     ttl,
		now:     time.Now,
	}
}

type sessionFile struct {
	Settings  domain.Settings           `json:"settings"`
	Results   []domain.ConversionResult `json:"results,omitempty"`
	UpdatedAt time.Time                 `json:"updated_at"`
	ExpiresAt time.Time                 `json:"expires_at"`
}

// Path returns the location of the session file
func (s *FileStore) Path() string {
	return filepath.Join(s.baseDir, fileName)
}

func (s *FileStore) Load(ctx context.Context) (*ports.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionMiss
		}
		return nil, err
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if s.now().After(f.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if f.Settings.KnownUploadedFileTypes == nil {
		f.Settings.KnownUploadedFileTypes = map[domain.FileTypeID]bool{}
	}

	return &ports.SessionState{
		Settings:  f.Settings,
		Results:   f.Results,
		UpdatedAt: f.UpdatedAt,
		ExpiresAt: f.ExpiresAt,
	}, nil
}

func (s *FileStore) Save(ctx context.Context, state *ports.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}

	now := s.now()
	f := sessionFile{
		Settings:  state.Settings,
		Results:   state.Results,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.Path() + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return err
	}
	return s.fs.Rename(tmp, s.Path())
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fs.Remove(s.Path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ ports.SessionStore = (*FileStore)(nil)
