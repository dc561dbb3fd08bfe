package application

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// Upload limits for the standard tier
const (
	DefaultMaxTotalSize int64 = 50 * 1000 * 1000
	DefaultMaxFiles           = 5
)

// UploadLimits bounds one selection
type UploadLimits struct {
	MaxTotalSize int64
	MaxFiles     int
}

// DefaultUploadLimits returns the standard tier limits
func DefaultUploadLimits() UploadLimits {
	return UploadLimits{MaxTotalSize: DefaultMaxTotalSize, MaxFiles: DefaultMaxFiles}
}

// FileHandler receives the accepted subset of a selection
type FileHandler func(files []domain.SelectedFile)

// UploadOptions configures an UploadSurface
type UploadOptions struct {
	Limits     UploadLimits
	SingleFile bool        // keep only the first accepted file until Submit
	OnFiles    FileHandler // called with accepted files in multi-file mode
	TempDir    string      // where URL imports are downloaded, defaults to os.TempDir
}

// UploadSurface filters user-selected files before they are submitted
type UploadSurface struct {
	store    *SettingsStore
	notifier ports.Notifier
	fetcher  ports.ArtifactFetcher
	auth     ports.AuthProvider
	opts     UploadOptions

	mu       sync.Mutex
	selected []domain.SelectedFile
}

// NewUploadSurface creates an upload surface. fetcher and auth are only
// needed for URL and cloud drive imports and may be nil otherwise.
func NewUploadSurface(
	store *SettingsStore,
	notifier ports.Notifier,
	fetcher ports.ArtifactFetcher,
	auth ports.AuthProvider,
	opts UploadOptions,
) *UploadSurface {
	if opts.Limits.MaxTotalSize <= 0 {
		opts.Limits.MaxTotalSize = DefaultMaxTotalSize
	}
	if opts.Limits.MaxFiles <= 0 {
		opts.Limits.MaxFiles = DefaultMaxFiles
	}
	return &UploadSurface{
		store:    store,
		notifier: notifier,
		fetcher:  fetcher,
		auth:     auth,
		opts:     opts,
	}
}

// Limits returns the limits advertised to the user
func (u *UploadSurface) Limits() UploadLimits {
	return u.opts.Limits
}

// LimitMessage is the footer shown under the upload surface
func (u *UploadSurface) LimitMessage() string {
	return fmt.Sprintf("Total image upload size limited to max of %s", domain.FormatBytes(u.opts.Limits.MaxTotalSize))
}

// AllowedExtensions lists what the surface advertises as acceptable
func (u *UploadSurface) AllowedExtensions() []string {
	return AllowedInputExtensions(u.store.Read())
}

// Accept applies the input type filter and the limits to a selection.
// Every rejected file gets its own warning.
func (u *UploadSurface) Accept(files []domain.SelectedFile) (accepted, rejected []domain.SelectedFile) {
	settings := u.store.Read()
	inputType := strings.ToLower(string(settings.FileInputID))
	inputExt := "." + inputType
	inputName := strings.ToUpper(inputType)
	if ft, ok := domain.LookupFileType(settings.FileInputID); ok {
		inputExt = ft.Extension()
		inputName = ft.Name
	}

	var total int64
	for _, f := range files {
		if !strings.Contains(strings.ToLower(f.Name), inputExt) {
			u.notifier.Warn(fmt.Sprintf("%s is not a %s file", f.Name, inputName))
			rejected = append(rejected, f)
			continue
		}
		if u.opts.SingleFile && len(accepted) == 1 {
			u.notifier.Warn(fmt.Sprintf("%s was skipped: only one file can be submitted at a time", f.Name))
			rejected = append(rejected, f)
			continue
		}
		if len(accepted) >= u.opts.Limits.MaxFiles {
			u.notifier.Warn(fmt.Sprintf("%s was skipped: you can only upload %d files", f.Name, u.opts.Limits.MaxFiles))
			rejected = append(rejected, f)
			continue
		}
		if total+f.Size > u.opts.Limits.MaxTotalSize {
			u.notifier.Warn(fmt.Sprintf("%s was skipped: total upload size is limited to %s", f.Name, domain.FormatBytes(u.opts.Limits.MaxTotalSize)))
			rejected = append(rejected, f)
			continue
		}
		total += f.Size
		accepted = append(accepted, f)
	}

	for _, f := range accepted {
		if id, ok := fileTypeOf(f.Name); ok {
			u.store.RecordUploadedFileType(id)
		}
	}

	log.Debug().
		Int("accepted", len(accepted)).
		Int("rejected", len(rejected)).
		Str("input", inputType).
		Bool("single", u.opts.SingleFile).
		Msg("selection filtered")

	if len(accepted) == 0 {
		return accepted, rejected
	}

	if u.opts.SingleFile {
		u.mu.Lock()
		u.selected = accepted
		u.mu.Unlock()
		return accepted, rejected
	}

	u.mu.Lock()
	u.selected = accepted
	u.mu.Unlock()

	if u.opts.OnFiles != nil {
		u.opts.OnFiles(accepted)
	}
	return accepted, rejected
}

// Selected returns the current selection
func (u *UploadSurface) Selected() []domain.SelectedFile {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]domain.SelectedFile, len(u.selected))
	copy(out, u.selected)
	return out
}

// Submit hands the stored file to the handler in single-file mode
func (u *UploadSurface) Submit() error {
	selected := u.Selected()
	if len(selected) == 0 {
		return domain.ErrNoFileSelected
	}
	if u.opts.OnFiles != nil {
		u.opts.OnFiles(selected)
	}
	return nil
}

// Clear empties the selection. Requests already in flight keep running.
func (u *UploadSurface) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.selected = nil
}

// FromURL downloads a public image URL to a temp file so it can be
// accepted like any local file.
func (u *UploadSurface) FromURL(ctx context.Context, rawURL string) (domain.SelectedFile, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return domain.SelectedFile{}, fmt.Errorf("%w: %s", domain.ErrInvalidURL, rawURL)
	}
	if u.fetcher == nil {
		return domain.SelectedFile{}, fmt.Errorf("url import not configured")
	}

	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		name = "image"
	}

	dir := u.opts.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	tmpDir, err := os.MkdirTemp(dir, "swiftconvert-url-*")
	if err != nil {
		return domain.SelectedFile{}, fmt.Errorf("failed to create temp dir: %w", err)
	}
	dest := filepath.Join(tmpDir, name)

	if err := u.fetcher.Download(ctx, parsed.String(), dest, nil); err != nil {
		os.RemoveAll(tmpDir)
		return domain.SelectedFile{}, fmt.Errorf("failed to import %s: %w", rawURL, err)
	}

	return domain.NewSelectedFile(dest)
}

// FromCloudDrive starts the provider sign-in. Importing from the drive
// itself is not available, so it always ends with ErrCloudImportUnsupported.
func (u *UploadSurface) FromCloudDrive(ctx context.Context) error {
	if u.auth == nil {
		return domain.ErrCloudImportUnsupported
	}
	if err := u.auth.SignIn(ctx); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	return domain.ErrCloudImportUnsupported
}

// fileTypeOf maps a file name to a catalog type by extension
func fileTypeOf(name string) (domain.FileTypeID, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "", false
	}
	id := domain.FileTypeID(ext)
	if _, ok := domain.LookupFileType(id); !ok {
		return "", false
	}
	return id, true
}
