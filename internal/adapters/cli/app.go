package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/devbush/swiftconvert/internal/adapters/analytics"
	"github.com/devbush/swiftconvert/internal/adapters/archive"
	"github.com/devbush/swiftconvert/internal/adapters/auth"
	"github.com/devbush/swiftconvert/internal/adapters/backend"
	"github.com/devbush/swiftconvert/internal/adapters/session"
	"github.com/devbush/swiftconvert/internal/application"
	"github.com/devbush/swiftconvert/internal/config"
	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// App holds all application dependencies
type App struct {
	Config    *config.Config
	Settings  *application.SettingsStore
	Session   *session.FileStore
	Auth      *auth.FileProvider
	Analytics ports.Analytics
	Notifier  ports.Notifier
	Backend   *backend.Client

	Output   *application.OutputSelector
	Quality  *application.QualitySelector
	Upload   *application.UploadSurface
	Convert  *application.ConvertService
	Export   *application.ExportService
	Workflow *application.Workflow

	// Results of the last job kept in the session, for `export`
	Restored []domain.ConversionResult

	unbind  func()
	mu      sync.Mutex
	pending []domain.SelectedFile
}

// NewApp creates and wires up all dependencies
func NewApp() (*App, error) {
	// Ensure directories exist
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	// Load config
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg)

	initial, err := cfg.DefaultSettings()
	if err != nil {
		return nil, err
	}

	ttl, err := cfg.GetSessionTTL()
	if err != nil {
		ttl = 24 * time.Hour // Default
	}
	maxSize, err := cfg.GetMaxTotalSize()
	if err != nil {
		maxSize = application.DefaultMaxTotalSize
	}
	compression, err := archive.ParseCompression(cfg.Archive.Compression)
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	notifier := NewConsoleNotifier(os.Stderr, quietFlag)

	// Create adapters
	sessionStore := session.NewFileStore(fs, config.SessionDir(), ttl)
	authProvider := auth.NewFileProvider(fs, config.AuthPath(), cfg.GetSignInURL())
	client := backend.NewClient(cfg.Endpoints.BackendURL)
	fetcher := backend.NewFetcher(client)

	distinctID := ""
	if s, err := authProvider.Session(context.Background()); err == nil && s.Authenticated() {
		distinctID = s.UserID
	}
	tracker := analytics.New(cfg.Endpoints.AnalyticsURL, cfg.Endpoints.AnalyticsKey, distinctID)

	// Create services
	settings := application.NewSettingsStore(initial)
	restored, unbind := application.BindSession(context.Background(), settings, sessionStore)

	bus := application.NewEventBus(0)
	convertSvc := application.NewConvertService(backend.NewConverter(client), application.NewProgressTracker(bus))
	exportSvc, err := application.NewExportService(application.ExportDeps{
		Fetcher:   fetcher,
		Archiver:  archive.NewZipWriter(fs, compression),
		Cloud:     backend.NewExporter(client),
		Auth:      authProvider,
		Analytics: tracker,
		Notifier:  notifier,
	})
	if err != nil {
		unbind()
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Settings:  settings,
		Session:   sessionStore,
		Auth:      authProvider,
		Analytics: tracker,
		Notifier:  notifier,
		Backend:   client,
		Output:    application.NewOutputSelector(settings),
		Quality:   application.NewQualitySelector(settings),
		Convert:   convertSvc,
		Export:    exportSvc,
		Workflow:  application.NewWorkflow(settings, convertSvc, exportSvc, sessionStore, bus),
		Restored:  restored,
		unbind:    unbind,
	}
	app.Upload = application.NewUploadSurface(settings, notifier, fetcher, authProvider, application.UploadOptions{
		Limits:     application.UploadLimits{MaxTotalSize: maxSize, MaxFiles: cfg.Limits.MaxFiles},
		SingleFile: singleFlag,
		OnFiles:    app.enqueue,
	})

	log.Debug().
		Str("backend", client.BaseURL()).
		Str("session", sessionStore.Path()).
		Int("restored_results", len(restored)).
		Msg("app initialized")

	return app, nil
}

func (a *App) enqueue(files []domain.SelectedFile) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = append(a.pending, files...)
}

// TakePending returns and clears the files handed over by the upload surface
func (a *App) TakePending() []domain.SelectedFile {
	a.mu.Lock()
	defer a.mu.Unlock()
	files := a.pending
	a.pending = nil
	return files
}

// Close stops session syncing and waits briefly for analytics delivery
func (a *App) Close() {
	if a.unbind != nil {
		a.unbind()
		a.unbind = nil
	}
	if c, ok := a.Analytics.(*analytics.Client); ok {
		c.Flush(2 * time.Second)
	}
}

// applyFlagOverrides lets persistent flags win over the config file
func applyFlagOverrides(cfg *config.Config) {
	if backendFlag != "" {
		cfg.Endpoints.BackendURL = backendFlag
	}
	if compressionFlag != "" {
		cfg.Archive.Compression = compressionFlag
	}
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize: %w", err)
		}
		globalApp = app
	}
	return globalApp, nil
}
